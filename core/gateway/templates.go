package gateway

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"qgate/core/logger"
)

// timeFormat is used for every timestamp shown on a page.
const timeFormat = "2006-01-02 15:04:05 MST"

// pageData drives the single page template. Every handler outcome is a
// combination of these blocks; absent blocks render nothing.
type pageData struct {
	Title    string
	User     *sessionView
	Alert    string
	Notice   string
	Proposal string

	Report *reportBlock
	Stored *storedView

	Files     []fileRow
	ShowFiles bool

	ShowForm    bool
	SheetSource bool
}

type sessionView struct {
	DisplayName string
	Backend     string
	ExpiresAt   string
}

// reportBlock is a rendered validation report: the pre-escaped error and
// warning fragments plus the counts and any file-type rejections that
// stopped the submission before the checker ran.
type reportBlock struct {
	ErrorCount   int
	WarningCount int
	Errors       template.HTML
	Warnings     template.HTML
	Rejections   []string
	Clean        bool
}

type storedView struct {
	Name     string
	Location string
	StoredAt string
}

type fileRow struct {
	Name    string
	Size    int64
	ModTime string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - Queue Spreadsheet Gateway</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6f8; color: #222; }
  main { max-width: 880px; margin: 0 auto; padding: 24px; }
  header { background: #1f3a5f; color: #fff; padding: 14px 24px; display: flex; justify-content: space-between; align-items: baseline; }
  header h1 { font-size: 20px; margin: 0; }
  .whoami { font-size: 13px; color: #cfd8e6; }
  .alert { background: #fdecea; border: 1px solid #e0b4b4; color: #8a2a2a; padding: 10px 14px; border-radius: 4px; }
  .notice { background: #e8f5e9; border: 1px solid #a5c9a8; color: #1e5e24; padding: 10px 14px; border-radius: 4px; }
  .report-message { margin: 10px 0 4px; }
  .report-error { color: #8a2a2a; }
  .report-warning { color: #8a6d1a; }
  table { border-collapse: collapse; margin: 4px 0 12px; }
  th, td { border: 1px solid #c9ced6; padding: 3px 10px; font-size: 13px; }
  th { background: #eef1f5; }
  .cell-error { background: #fdecea; }
  .cell-warning { background: #fff8e1; }
  form fieldset { border: 1px solid #c9ced6; border-radius: 4px; margin: 16px 0; padding: 12px 16px; background: #fff; }
  form legend { font-weight: 600; font-size: 14px; padding: 0 6px; }
  label { display: inline-block; min-width: 110px; font-size: 14px; }
  input[type=text], input[type=password] { width: 260px; padding: 3px 6px; }
  button { padding: 4px 14px; margin-right: 6px; }
  .files td.size { text-align: right; }
  footer { margin-top: 24px; font-size: 13px; }
</style>
</head>
<body>
<header>
  <h1>Queue Spreadsheet Gateway</h1>
  <span class="whoami">{{if .User}}{{.User.DisplayName}} via {{.User.Backend}}, session until {{.User.ExpiresAt}}{{else}}not logged in{{end}}</span>
</header>
<main>
<h2>{{.Title}}</h2>
{{if .Alert}}<p class="alert">{{.Alert}}</p>{{end}}
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
{{with .Report}}
  {{range .Rejections}}<p class="report-message report-error">{{.}}</p>{{end}}
  {{if or .Errors .Warnings .Clean}}
    <p>{{.ErrorCount}} error(s), {{.WarningCount}} warning(s){{if $.Proposal}} for proposal {{$.Proposal}}{{end}}.</p>
    {{.Errors}}
    {{.Warnings}}
    {{if .Clean}}<p class="notice">No problems found.</p>{{end}}
  {{end}}
{{end}}
{{with .Stored}}
  <dl>
    <dt>Stored as</dt><dd>{{.Name}}</dd>
    <dt>Location</dt><dd>{{.Location}}</dd>
    <dt>Stored at</dt><dd>{{.StoredAt}}</dd>
  </dl>
{{end}}
{{if .ShowFiles}}
  {{if .Files}}
  <table class="files">
    <tr><th>Name</th><th>Size (bytes)</th><th>Modified</th></tr>
    {{range .Files}}<tr><td>{{.Name}}</td><td class="size">{{.Size}}</td><td>{{.ModTime}}</td></tr>{{end}}
  </table>
  {{else}}<p>No files uploaded for this proposal yet.</p>{{end}}
{{end}}
{{if .ShowForm}}
<form method="post" action="/submit" enctype="multipart/form-data">
  <fieldset>
    <legend>Account</legend>
    {{if .User}}
    <button name="logout" value="1">Log out</button>
    {{else}}
    <p><label for="username">Username</label> <input type="text" id="username" name="username" autocomplete="username"></p>
    <p><label for="password">Password</label> <input type="password" id="password" name="password" autocomplete="current-password"></p>
    <button name="login" value="1">Log in</button>
    {{end}}
  </fieldset>
  <fieldset>
    <legend>Submission</legend>
    <p><label for="proposal">Proposal ID</label> <input type="text" id="proposal" name="proposal" value="{{.Proposal}}" placeholder="S22B-QN001"></p>
    <p><label for="upload_file">Spreadsheet file</label> <input type="file" id="upload_file" name="upload_file" accept=".xlsx,.xls"></p>
    {{if .SheetSource}}
    <p><label for="sheet_name">Online sheet name</label> <input type="text" id="sheet_name" name="sheet_name"></p>
    {{end}}
    <button name="check" value="1">Check</button>
    <button name="upload" value="1">Check and upload</button>
    <button name="list_files" value="1">List uploaded files</button>
  </fieldset>
</form>
{{else}}
<footer><a href="/">Back to the submission form</a></footer>
{{end}}
</main>
</body>
</html>
`))

// render buffers the page before writing so a template fault never leaks
// a half-built document to the client.
func (g *Gateway) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		g.logger.ErrorContext(r.Context(), "failed to render page",
			logger.Component("gateway"), logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// viewOf converts the resolved session into its page header form.
func viewOf(info sessionInfo) *sessionView {
	if !info.valid {
		return nil
	}
	return &sessionView{
		DisplayName: info.session.DisplayName,
		Backend:     info.session.Backend,
		ExpiresAt:   info.session.ExpiresAt.Format(timeFormat),
	}
}

func formatModTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}
