package present

import (
	"fmt"
	"html/template"
	"io"

	"fmradio/radio"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<title>FM Radio Control</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body { font-family: Arial, sans-serif; text-align: center; margin: 20px; }
form { margin: 0; }
button { font-size: 24px; padding: 15px; margin: 10px; width: 200px; }
table { margin: 0 auto; }
td { padding: 2px 8px; text-align: left; }
.freq { font-size: 36px; margin: 20px; }
.status { font-size: 24px; margin: 20px; }
</style>
</head>
<body>
<h1>FM Radio Control</h1>
<div class="freq">{{.Frequency}} MHz</div>
<div class="status">Status: {{.Power}}</div>
<div class="status">Volume: {{.Volume}}</div>
<table>
{{range .Rows}}<tr><td>{{.Key}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{range .Buttons}}<form action="{{.Path}}" method="get"><button>{{.Label}}</button></form>
{{end}}</body>
</html>
`))

type row struct {
	Key, Value string
}

type pageButton struct {
	Path, Label string
}

type pageData struct {
	Frequency string
	Power     string
	Volume    int
	Rows      []row
	Buttons   []pageButton
}

var buttons = []pageButton{
	{"/up", "UP"},
	{"/down", "DOWN"},
	{"/seekup", "SEEK UP"},
	{"/seekdown", "SEEK DOWN"},
	{"/toggle", "TOGGLE"},
	{"/volup", "VOL +"},
	{"/voldown", "VOL -"},
}

// RDSRows returns the RDS fields as key/value pairs in display order.
func RDSRows(r radio.RDSInfo) [][2]string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	pi := ""
	if r.ProgramID != 0 {
		pi = fmt.Sprintf("%04X", r.ProgramID)
	}
	return [][2]string{
		{"PS", r.ProgramService},
		{"RT", r.RadioText},
		{"PTY", r.ProgramType},
		{"TP", yesNo(r.TrafficProgram)},
		{"TA", yesNo(r.TrafficAnnouncement)},
		{"PI", pi},
	}
}

// WritePage renders the control page for st.
func WritePage(w io.Writer, st radio.State) error {
	data := pageData{
		Frequency: fmt.Sprintf("%.1f", st.Frequency),
		Power:     st.PowerLabel(),
		Volume:    st.Volume,
		Buttons:   buttons,
	}
	for _, kv := range RDSRows(st.RDS) {
		data.Rows = append(data.Rows, row{Key: kv[0], Value: kv[1]})
	}
	return pageTmpl.Execute(w, data)
}
