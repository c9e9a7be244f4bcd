package task

import (
	"github.com/go-playground/validator/v10"

	"github.com/tujenge/mipango/core"
)

var (
	statusTag    = "taskstatus"
	statusText   = "invalid status"
	priorityTag  = "taskpriority"
	priorityText = "invalid priority"
)

func init() {
	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(statusTag, statusText)

	_ = core.Validate.RegisterValidation(priorityTag, priorityValidation)
	core.RegisterCustomTranslation(priorityTag, priorityText)
}

func statusValidation(fl validator.FieldLevel) bool {
	return contains(AllStatuses, fl.Field().String())
}

func priorityValidation(fl validator.FieldLevel) bool {
	return contains(AllPriorities, fl.Field().String())
}

func contains(vals []string, s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}
	return false
}
