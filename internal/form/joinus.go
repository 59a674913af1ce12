package form

const joinUsSubject = `New Talent Application from {{.name}}`

const joinUsBody = `New application received from the Valorem Global Talent Network page.

Applicant Details:

Name: {{.name}}
Email: {{.email}}
Country & Time Zone: {{.country}}
LinkedIn Profile: {{.linkedin}}
Resume/CV Link: {{.resume}}
Areas of Expertise: {{.expertise}}
`

// JoinUs is the talent network application form. Every field is mandatory.
func JoinUs() *Schema {
	required := func(name string) Field {
		return Field{Name: name, Required: true, MaxLength: NoLimit}
	}

	email := required("email")
	email.Format = IsEmail
	email.Message = "Invalid email format."

	return newSchema(NameJoinUs, "join_us", []Field{
		required("name"),
		email,
		required("country"),
		required("linkedin"),
		required("expertise"),
		required("resume"),
	}, "All fields are required.", joinUsSubject, joinUsBody)
}
