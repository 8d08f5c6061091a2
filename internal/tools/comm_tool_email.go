package tools

import (
	"fmt"

	"github.com/olm-ai/olm/pkg/models"
)

type SendEmailTool models.Specification

// SendEmail is a mock. It formats the email and reports it as sent without
// touching any mail infrastructure.
var SendEmail = SendEmailTool{
	Name:        "send_email",
	Description: "Mock sending an email",
	Category:    CategoryCommunication,
	Inputs: SchemaFromParams([]Param{
		{
			Name:        "to",
			Description: "The recipient email address",
		},
		{
			Name:        "subject",
			Description: "The email subject",
		},
		{
			Name:        "content",
			Description: "The email content",
		},
	}),
}

func (s SendEmailTool) Call(input models.Input) (string, error) {
	to, err := input.String("to")
	if err != nil {
		return "", err
	}
	subject, err := input.String("subject")
	if err != nil {
		return "", err
	}
	content, err := input.String("content")
	if err != nil {
		return "", err
	}
	return mockEmail(to, subject, content), nil
}

func (s SendEmailTool) Specification() models.Specification {
	return models.Specification(SendEmail)
}

func mockEmail(to, subject, content string) string {
	return fmt.Sprintf("[MOCK EMAIL]\nTo: %v\nSubject: %v\nContent: %v\n(Email not actually sent.)", to, subject, content)
}
