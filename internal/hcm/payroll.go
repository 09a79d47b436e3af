package hcm

import "hrbridge/pkg/catalog"

// PayrollTools wrap the legacy SOAP payroll service; the platform never
// exposed these over REST.
func PayrollTools() []catalog.Tool {
	return []catalog.Tool{
		{
			Name:        "payroll_get_payslips",
			Title:       "Get Payslips",
			Description: "Retrieve payslip summaries for an employee over a date range.",
			Service:     "Payroll",
			Action:      "Get_Payslips",
			Scopes:      []string{"payroll:read"},
			Params: []catalog.Param{
				{Name: "Employee_ID", In: "body", Required: true},
				{Name: "From_Date", In: "body", Description: "ISO-8601 date."},
				{Name: "To_Date", In: "body"},
			},
		},
		{
			Name:        "payroll_get_pay_groups",
			Title:       "Get Pay Groups",
			Description: "List configured pay groups and their run frequencies.",
			Service:     "Payroll",
			Action:      "Get_Pay_Groups",
			Scopes:      []string{"payroll:read"},
		},
		{
			Name:        "payroll_get_payroll_results",
			Title:       "Get Payroll Results",
			Description: "Retrieve calculated payroll results for a completed pay period.",
			Service:     "Payroll",
			Action:      "Get_Payroll_Results",
			Scopes:      []string{"payroll:read"},
			Params: []catalog.Param{
				{Name: "Pay_Group_ID", In: "body", Required: true},
				{Name: "Period_End_Date", In: "body", Required: true},
			},
		},
	}
}
