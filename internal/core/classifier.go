package core

import "strings"

// InferDocumentType guesses a document type from its file name. The match is
// keyword based and case insensitive, first keyword wins: vendor/invoice
// outranks everything, and a bare "register" reads as a sales register.
// Files that match nothing are treated as vendor invoices, the most common
// upload.
func InferDocumentType(fileName string) DocumentType {
	name := strings.ToLower(fileName)

	switch {
	case contains(name, "vendor", "invoice"):
		return DocTypeVendorInvoice
	case contains(name, "sales", "register"):
		return DocTypeSalesRegister
	case contains(name, "salary", "payroll"):
		return DocTypeSalaryRegister
	case contains(name, "bank", "statement"):
		return DocTypeBankStatement
	case contains(name, "purchase", "procurement"):
		return DocTypePurchaseRegister
	default:
		return DocTypeVendorInvoice
	}
}

func contains(name string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
