package hcm

import "hrbridge/pkg/catalog"

func LearningTools() []catalog.Tool {
	return []catalog.Tool{
		{
			Name:        "learning_search_content",
			Title:       "Search Learning Content",
			Description: "Search published courses and lessons in the learning catalog.",
			Method:      "GET",
			Path:        "/learningContent",
			Scopes:      []string{"learning:read"},
			Params: []catalog.Param{
				{Name: "search", In: "query", Description: "Title or keyword search."},
				{Name: "limit", In: "query", Type: "integer"},
			},
			Select: "data[].{id: id, title: title, type: contentType.descriptor}",
		},
		{
			Name:        "learning_list_enrollments",
			Title:       "List Enrollments",
			Description: "List a worker's learning enrollments with completion status.",
			Method:      "GET",
			Path:        "/workers/{workerId}/learningEnrollments",
			Scopes:      []string{"learning:read"},
			Params: []catalog.Param{
				{Name: "workerId", In: "path", Required: true},
			},
			Select: "data[].{content: learningContent.descriptor, status: status.descriptor, completedOn: completionDate}",
		},
		{
			Name:        "learning_enroll",
			Title:       "Enroll in Content",
			Description: "Enroll a worker in a course or lesson.",
			Method:      "POST",
			Path:        "/learningEnrollments",
			Scopes:      []string{"learning:write"},
			Params: []catalog.Param{
				{Name: "workerId", In: "body", Required: true},
				{Name: "contentId", In: "body", Required: true},
			},
		},
	}
}
