package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError converts binding errors into a field-keyed map of
// Arabic messages. Non-validator errors map to a single generic entry.
func FormatValidationError(err error) map[string]string {
	fields := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = "صيغة الطلب غير صالحة"
		return fields
	}

	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = getFieldErrorMessage(fieldError)
	}
	return fields
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s مطلوب", field)
	case "email":
		return fmt.Sprintf("%s يجب أن يكون بريدًا إلكترونيًا صالحًا", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s يجب ألا يقل عن %s أحرف", field, fe.Param())
		}
		return fmt.Sprintf("%s يجب ألا يقل عن %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s يجب ألا يزيد عن %s حرفًا", field, fe.Param())
		}
		return fmt.Sprintf("%s يجب ألا يزيد عن %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s يجب أن يتكون من %s خانة بالضبط", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s يجب أن يحتوي على أرقام فقط", field)
	case "oneof":
		return fmt.Sprintf("%s قيمة غير مسموح بها", field)
	case "url":
		return fmt.Sprintf("%s يجب أن يكون رابطًا صالحًا", field)
	case "uuid":
		return fmt.Sprintf("%s معرّف غير صالح", field)
	default:
		return fmt.Sprintf("%s غير صالح", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Email":       "البريد الإلكتروني",
		"Password":    "كلمة المرور",
		"DisplayName": "الاسم",
		"CollegeID":   "الرقم الجامعي",
		"Code":        "رمز التحقق",
		"Body":        "المحتوى",
		"Title":       "العنوان",
		"Bio":         "النبذة",
		"Website":     "الموقع",
		"Location":    "الموقع الجغرافي",
		"Reason":      "سبب البلاغ",
		"Kind":        "نوع التفاعل",
		"Semester":    "الفصل الدراسي",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
