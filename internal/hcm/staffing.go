package hcm

import "hrbridge/pkg/catalog"

// StaffingTools covers the worker and position endpoints of the staffing API.
func StaffingTools() []catalog.Tool {
	return []catalog.Tool{
		{
			Name:        "staffing_list_workers",
			Title:       "List Workers",
			Description: "Search the worker directory. Returns id, descriptor and primary position for each match.",
			Method:      "GET",
			Path:        "/workers",
			Scopes:      []string{"staffing:read"},
			Params: []catalog.Param{
				{Name: "search", In: "query", Description: "Free-text name search."},
				{Name: "limit", In: "query", Type: "integer", Description: "Page size, max 100."},
				{Name: "offset", In: "query", Type: "integer"},
			},
			Select: "{total: total, workers: data[].{id: id, name: descriptor, position: primaryJob.descriptor}}",
		},
		{
			Name:        "staffing_get_worker",
			Title:       "Get Worker",
			Description: "Fetch one worker record by id, including job, manager and organization assignments.",
			Method:      "GET",
			Path:        "/workers/{workerId}",
			Scopes:      []string{"staffing:read"},
			Params: []catalog.Param{
				{Name: "workerId", In: "path", Required: true, Description: "Worker reference id."},
			},
		},
		{
			Name:        "staffing_list_direct_reports",
			Title:       "List Direct Reports",
			Description: "List the direct reports of a worker.",
			Method:      "GET",
			Path:        "/workers/{workerId}/directReports",
			Scopes:      []string{"staffing:read"},
			Params: []catalog.Param{
				{Name: "workerId", In: "path", Required: true},
			},
			Select: "data[].{id: id, name: descriptor}",
		},
		{
			Name:        "staffing_initiate_job_change",
			Title:       "Initiate Job Change",
			Description: "Start a job change event for a worker (transfer, promotion or data change).",
			Method:      "POST",
			Path:        "/workers/{workerId}/jobChanges",
			Scopes:      []string{"staffing:write"},
			Params: []catalog.Param{
				{Name: "workerId", In: "path", Required: true},
				{Name: "reason", In: "body", Required: true, Description: "Job change reason reference."},
				{Name: "effectiveDate", In: "body", Required: true, Description: "ISO-8601 date."},
				{Name: "comment", In: "body"},
			},
		},
	}
}
