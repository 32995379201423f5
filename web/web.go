// Package web is the worked browser demo: a single page with a textarea,
// a library of sample programs, and a server-side inference round trip.
// It generalizes the original demo to the full grammar (let rec, return,
// strings, sequences) and the new diag-based error rendering.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/chuigda/hmlang/infer"
	"github.com/chuigda/hmlang/parser"
	"github.com/chuigda/hmlang/tyenv"
)

//go:embed templates/index.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// SampleCode is one entry in the demo page's example picker.
type SampleCode struct {
	Name     string
	Code     string
	Category string
}

// PageData is the data the index template renders.
type PageData struct {
	Code        string
	Result      string
	ErrorMsg    string
	SampleCodes []SampleCode
}

var sampleCodes = []SampleCode{
	{Name: "integer", Code: "123", Category: "literals"},
	{Name: "boolean", Code: "true", Category: "literals"},
	{Name: "string", Code: `"hello"`, Category: "literals"},

	{Name: "if", Code: "if condint 1 then 10 else 20", Category: "control flow"},
	{Name: "sequence", Code: "print \"a\"; print \"b\"; 0", Category: "control flow"},
	{Name: "return", Code: "fn x => if condint x then return 1 else return 2", Category: "control flow"},

	{Name: "let", Code: "let x = 10 in square x", Category: "let"},
	{Name: "let id, two uses", Code: "let id = fn x => x in (id 3); (id true)", Category: "let"},
	{Name: "let rec", Code: "let rec f = fn x => if condint x then 1 else f x in f 0", Category: "let"},

	{Name: "identity", Code: "fn x => x", Category: "functions"},
	{Name: "application", Code: "(fn x => x) 123", Category: "functions"},
	{Name: "currying", Code: "let add = fn x => fn y => square x in add 5 3", Category: "functions"},

	{Name: "error: arg mismatch", Code: "square true", Category: "type errors"},
	{Name: "error: if condition", Code: "if 1 then 10 else 20", Category: "type errors"},
	{Name: "error: if branches", Code: "if true then 10 else false", Category: "type errors"},
	{Name: "error: occurs check", Code: "fn x => x x", Category: "type errors"},
	{Name: "error: return outside function", Code: "return 1", Category: "type errors"},
}

// Handler builds the single-page demo's http.Handler, inferring against
// seedEnv for each submission.
func Handler(seedEnv func() *tyenv.Env) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		data := PageData{SampleCodes: sampleCodes}

		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				data.ErrorMsg = fmt.Sprintf("failed to parse form: %v", err)
				render(w, data)
				return
			}
			code := r.FormValue("code")
			data.Code = code

			if code == "" {
				data.ErrorMsg = "enter a program first"
			} else {
				expr, parseErr := parser.Parse(code)
				if parseErr != nil {
					data.ErrorMsg = fmt.Sprintf("parse error: %v", parseErr)
				} else {
					env := seedEnv()
					t, inferErr := (infer.J{}).Infer(env, expr)
					if inferErr != nil {
						data.ErrorMsg = fmt.Sprintf("type error: %v", inferErr)
					} else {
						data.Result = infer.Generalize(env, t).String()
					}
				}
			}
		}
		render(w, data)
	})
	return mux
}

func render(w http.ResponseWriter, data PageData) {
	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		fmt.Println("error executing template:", err)
	}
}
