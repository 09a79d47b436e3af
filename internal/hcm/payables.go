package hcm

import "hrbridge/pkg/catalog"

// PayablesTools covers the accounts-payable surface: supplier invoices and
// their approval state.
func PayablesTools() []catalog.Tool {
	return []catalog.Tool{
		{
			Name:        "payables_list_supplier_invoices",
			Title:       "List Supplier Invoices",
			Description: "List supplier invoices, optionally filtered by status or supplier.",
			Method:      "GET",
			Path:        "/supplierInvoices",
			Scopes:      []string{"payables:read"},
			Params: []catalog.Param{
				{Name: "status", In: "query", Description: "draft | pending | approved | paid | canceled."},
				{Name: "supplier", In: "query", Description: "Supplier reference id."},
				{Name: "limit", In: "query", Type: "integer"},
			},
			Select: "data[].{id: id, supplier: supplier.descriptor, amount: totalInvoiceAmount, currency: currency.descriptor, status: invoiceStatus.descriptor}",
		},
		{
			Name:        "payables_get_supplier_invoice",
			Title:       "Get Supplier Invoice",
			Description: "Fetch one supplier invoice with its line items.",
			Method:      "GET",
			Path:        "/supplierInvoices/{invoiceId}",
			Scopes:      []string{"payables:read"},
			Params: []catalog.Param{
				{Name: "invoiceId", In: "path", Required: true},
			},
		},
		{
			Name:        "payables_submit_invoice",
			Title:       "Submit Supplier Invoice",
			Description: "Submit a draft supplier invoice into the approval flow.",
			Method:      "POST",
			Path:        "/supplierInvoices/{invoiceId}/submit",
			Scopes:      []string{"payables:write"},
			Params: []catalog.Param{
				{Name: "invoiceId", In: "path", Required: true},
				{Name: "comment", In: "body"},
			},
		},
	}
}
