package hcm

import "hrbridge/pkg/catalog"

func AbsenceTools() []catalog.Tool {
	return []catalog.Tool{
		{
			Name:        "absence_list_balances",
			Title:       "List Absence Balances",
			Description: "List a worker's time-off balances by absence plan.",
			Method:      "GET",
			Path:        "/workers/{workerId}/absenceBalances",
			Scopes:      []string{"absence:read"},
			Params: []catalog.Param{
				{Name: "workerId", In: "path", Required: true},
			},
			Select: "data[].{plan: absencePlan.descriptor, balance: quantity, unit: unitOfTime.descriptor}",
		},
		{
			Name:        "absence_list_types",
			Title:       "List Absence Types",
			Description: "List the absence types a worker may request.",
			Method:      "GET",
			Path:        "/workers/{workerId}/eligibleAbsenceTypes",
			Scopes:      []string{"absence:read"},
			Params: []catalog.Param{
				{Name: "workerId", In: "path", Required: true},
			},
			Select: "data[].{id: id, type: descriptor}",
		},
		{
			Name:        "absence_request_time_off",
			Title:       "Request Time Off",
			Description: "Submit a time-off request for a worker. Dates are ISO-8601.",
			Method:      "POST",
			Path:        "/workers/{workerId}/requestTimeOff",
			Scopes:      []string{"absence:write"},
			Params: []catalog.Param{
				{Name: "workerId", In: "path", Required: true},
				{Name: "absenceTypeId", In: "body", Required: true},
				{Name: "startDate", In: "body", Required: true},
				{Name: "endDate", In: "body", Required: true},
				{Name: "comment", In: "body"},
			},
		},
	}
}
