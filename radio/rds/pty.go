package rds

var programTypes = [32]string{
	"None",
	"News",
	"Current Affairs",
	"Information",
	"Sport",
	"Education",
	"Drama",
	"Culture",
	"Science",
	"Varied",
	"Pop Music",
	"Rock Music",
	"Easy Listening",
	"Light Classical",
	"Serious Classical",
	"Other Music",
	"Weather",
	"Finance",
	"Children's",
	"Social Affairs",
	"Religion",
	"Phone-In",
	"Travel",
	"Leisure",
	"Jazz Music",
	"Country Music",
	"National Music",
	"Oldies Music",
	"Folk Music",
	"Documentary",
	"Alarm Test",
	"Alarm",
}

// ProgramTypeLabel returns the European programme type name for code.
func ProgramTypeLabel(code uint8) string {
	if int(code) >= len(programTypes) {
		return ""
	}
	return programTypes[code]
}

// ProgramTypeCode is the inverse of ProgramTypeLabel. Unknown labels map to 0.
func ProgramTypeCode(label string) uint8 {
	for i, s := range programTypes {
		if s == label {
			return uint8(i)
		}
	}
	return 0
}
