package form

const contactSubject = `New Contact Form Submission from {{.name}}`

const contactBody = `You are receiving this email because a new message has been submitted through the contact form on the Valorem Global Partners website (valoremgp.com).

Here are the details:

Name: {{.name}}
Email: {{.email}}
Company: {{.company}}
Service of Interest: {{.service}}

Message:
{{.message}}`

// Contact is the website contact form.
func Contact() *Schema {
	return newSchema(NameContact, "contact", []Field{
		{Name: "name", Required: true, MinLength: 1, MaxLength: 200, Message: "Invalid name"},
		{Name: "email", Required: true, MaxLength: NoLimit, Format: IsEmail, Message: "Invalid email"},
		{Name: "message", MaxLength: 5000, Message: "Invalid message"},
		{Name: "company", MaxLength: 200, Message: "Invalid company"},
		{Name: "service", MaxLength: 100, Message: "Invalid service"},
	}, "", contactSubject, contactBody)
}
