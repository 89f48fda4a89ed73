package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Email     string `validate:"required,email"`
	CollegeID string `validate:"required,len=12,numeric"`
	Password  string `validate:"required,min=6"`
}

func validationErrors(t *testing.T, form registerForm) map[string]string {
	t.Helper()
	err := validator.New().Struct(form)
	require.Error(t, err)
	return FormatValidationError(err)
}

func TestFormatValidationErrorArabicMessages(t *testing.T) {
	fields := validationErrors(t, registerForm{})

	assert.Equal(t, "البريد الإلكتروني مطلوب", fields["Email"])
	assert.Equal(t, "الرقم الجامعي مطلوب", fields["CollegeID"])
	assert.Equal(t, "كلمة المرور مطلوب", fields["Password"])
}

func TestCollegeIDMustBeTwelveDigits(t *testing.T) {
	fields := validationErrors(t, registerForm{
		Email:     "sara@dufaa.com",
		CollegeID: "12345",
		Password:  "password123",
	})
	assert.Equal(t, "الرقم الجامعي يجب أن يتكون من 12 خانة بالضبط", fields["CollegeID"])

	fields = validationErrors(t, registerForm{
		Email:     "sara@dufaa.com",
		CollegeID: "44320011223x",
		Password:  "password123",
	})
	assert.Equal(t, "الرقم الجامعي يجب أن يحتوي على أرقام فقط", fields["CollegeID"])
}

func TestInvalidEmailAndShortPassword(t *testing.T) {
	fields := validationErrors(t, registerForm{
		Email:     "not-an-email",
		CollegeID: "443200112233",
		Password:  "123",
	})
	assert.Equal(t, "البريد الإلكتروني يجب أن يكون بريدًا إلكترونيًا صالحًا", fields["Email"])
	assert.Equal(t, "كلمة المرور يجب ألا يقل عن 6 أحرف", fields["Password"])
}

func TestNonValidatorErrorMapsToGenericEntry(t *testing.T) {
	fields := FormatValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "صيغة الطلب غير صالحة", fields["_"])
}
