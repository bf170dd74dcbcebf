package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"qgate/core/filetype"
	"qgate/core/logger"
	"qgate/core/sheet"
	"qgate/core/storage"
	"qgate/core/upload"
)

// Home renders the submission form with the caller's current auth state.
func (g *Gateway) Home(w http.ResponseWriter, r *http.Request) {
	info := g.currentSession(r)
	g.render(w, r, http.StatusOK, pageData{
		Title:       "Submit a queue spreadsheet",
		User:        viewOf(info),
		ShowForm:    true,
		SheetSource: g.sheets != nil,
	})
}

// Submit runs the whole per-request pipeline: bind, resolve session,
// logout, login, then exactly one of check, upload or list_files. The
// request terminates after its action branch; nothing is shared across
// requests except the session store and the file storage.
func (g *Gateway) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form submitForm
	if err := g.bind(r, &form); err != nil {
		g.logger.DebugContext(ctx, "rejected unreadable form",
			logger.Component("gateway"), logger.Error(err))
		g.inputError(w, r, sessionInfo{}, "The submitted form could not be read.")
		return
	}

	info := g.currentSession(r)

	// Logout runs before everything else, so a logout combined with any
	// other flag executes that flag anonymously.
	if form.Logout {
		if info.id != "" {
			if err := g.sessions.Invalidate(ctx, info.id); err != nil {
				g.logger.WarnContext(ctx, "failed to invalidate session",
					logger.Component("gateway"), logger.Error(err))
			}
		}
		g.clearSession(w)
		info = sessionInfo{}
	}

	creds := upload.Credentials{
		SessionValid:     info.valid,
		SessionPresented: info.presented,
		Backend:          info.session.Backend,
		DisplayName:      info.session.DisplayName,
	}

	// A login request is ignored while a valid session exists.
	if form.Login && !info.valid {
		username := strings.TrimSpace(form.Username)
		if username == "" || form.Password == "" {
			g.inputError(w, r, info, "Username and password are required to log in.")
			return
		}

		creds.AuthAttempted = true
		outcome := g.auth.Authenticate(ctx, username, form.Password)
		if !outcome.OK {
			g.render(w, r, http.StatusUnauthorized, pageData{
				Title: "Login failed",
				Alert: "Login failed: " + outcome.FailureReason() + ".",
			})
			return
		}

		s := g.sessions.Create(ctx, outcome.Backend, outcome.DisplayName)
		g.issueSession(w, r, s)
		info = sessionInfo{session: s, id: s.ID, valid: true, presented: true}
		creds.AuthOK = true
		creds.Backend = s.Backend
		creds.DisplayName = s.DisplayName
	}

	switch n := form.actionCount(); {
	case n > 1:
		g.inputError(w, r, info, "Choose exactly one of check, upload, or list files.")
		return
	case n == 0:
		// Pure session management: show the form with the new state.
		var notice string
		switch {
		case creds.AuthOK:
			notice = "Logged in as " + info.session.DisplayName + "."
		case form.Logout:
			notice = "Logged out."
		}
		g.render(w, r, http.StatusOK, pageData{
			Title:       "Submit a queue spreadsheet",
			User:        viewOf(info),
			Notice:      notice,
			Proposal:    strings.TrimSpace(form.Proposal),
			ShowForm:    true,
			SheetSource: g.sheets != nil,
		})
		return
	}

	proposal := strings.TrimSpace(form.Proposal)
	if proposal == "" {
		g.inputError(w, r, info, "A proposal identifier is required.")
		return
	}

	switch {
	case form.ListFiles:
		g.listFiles(w, r, info, creds, proposal)
	case form.Check:
		if res := g.runCheck(w, r, &form, info, proposal); res != nil {
			g.render(w, r, http.StatusOK, pageData{
				Title:    "Validation report",
				User:     viewOf(info),
				Proposal: proposal,
				Report:   res.block,
			})
		}
	case form.Upload:
		if res := g.runCheck(w, r, &form, info, proposal); res != nil {
			g.storeUpload(w, r, info, creds, proposal, res)
		}
	}
}

// checkResult carries a resolved and checked submission between the check
// stage and the upload stage.
type checkResult struct {
	filename string
	data     []byte
	kind     upload.Kind
	report   *sheet.Report
	block    *reportBlock
}

// runCheck resolves the input source, validates the file type and runs
// the checker. On any failure the response has already been written and
// nil is returned; a non-nil result always carries a formatted report.
func (g *Gateway) runCheck(w http.ResponseWriter, r *http.Request, form *submitForm, info sessionInfo, proposal string) *checkResult {
	ctx := r.Context()

	src, err := g.chooseSource(form)
	if err != nil {
		switch {
		case errors.Is(err, errSheetSourceDisabled):
			g.inputError(w, r, info, "Online sheets are not available on this installation; attach a spreadsheet file instead.")
		default:
			g.inputError(w, r, info, "Attach a spreadsheet file or name an online sheet.")
		}
		return nil
	}

	filename, data, err := src.Resolve(ctx)
	if err != nil {
		if src.Kind() == upload.KindFile {
			g.inputError(w, r, info, "The uploaded file could not be read.")
			return nil
		}
		g.logger.ErrorContext(ctx, "failed to fetch online sheet",
			logger.Component("gateway"), logger.Proposal(proposal), logger.Error(err))
		g.upstreamError(w, r, info, "The online sheet could not be fetched; try again later or upload the file directly.")
		return nil
	}

	// Both file-type checks always run so a wrong extension and a wrong
	// signature are reported together.
	if ft := filetype.Validate(filename, data); !ft.OK() {
		var rejections []string
		if msg := ft.ExtensionError(); msg != "" {
			rejections = append(rejections, msg)
		}
		if msg := ft.ContentError(); msg != "" {
			rejections = append(rejections, msg)
		}
		g.render(w, r, http.StatusOK, pageData{
			Title:    "Submission rejected",
			User:     viewOf(info),
			Proposal: proposal,
			Alert:    fmt.Sprintf("%s was not accepted.", filename),
			Report:   &reportBlock{Rejections: rejections},
		})
		return nil
	}

	rep, err := g.checker.Check(ctx, proposal, filename, data)
	if err != nil {
		g.logger.ErrorContext(ctx, "checker unavailable",
			logger.Component("gateway"), logger.Proposal(proposal), logger.Error(err))
		g.upstreamError(w, r, info, "The validation service is unavailable; the spreadsheet was not checked.")
		return nil
	}

	block, ok := g.buildReportBlock(w, r, rep)
	if !ok {
		return nil
	}
	return &checkResult{filename: filename, data: data, kind: src.Kind(), report: rep, block: block}
}

// buildReportBlock formats both severities of a report for the page. A
// formatter failure is a programming error, not a user mistake: it is
// logged and turned into a bare 500.
func (g *Gateway) buildReportBlock(w http.ResponseWriter, r *http.Request, rep *sheet.Report) (*reportBlock, bool) {
	errHTML, errFmt := g.formatter.Format(rep, sheet.SeverityError)
	warnHTML, warnFmt := g.formatter.Format(rep, sheet.SeverityWarning)
	if err := errors.Join(errFmt, warnFmt); err != nil {
		g.logger.ErrorContext(r.Context(), "failed to format report",
			logger.Component("gateway"), logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	return &reportBlock{
		ErrorCount:   rep.ErrorCount(),
		WarningCount: rep.WarningCount(),
		Errors:       errHTML,
		Warnings:     warnHTML,
		Clean:        rep.ErrorCount() == 0 && rep.WarningCount() == 0,
	}, true
}

// storeUpload hands a checked submission to the upload manager and maps
// its sentinels onto pages. The validation report survives every failure:
// whatever the outcome, the user keeps the full enumeration.
func (g *Gateway) storeUpload(w http.ResponseWriter, r *http.Request, info sessionInfo, creds upload.Credentials, proposal string, res *checkResult) {
	ctx := r.Context()

	req := upload.Request{
		Proposal: proposal,
		Filename: res.filename,
		Data:     res.data,
		Source:   res.kind,
	}

	result, err := g.uploads.Store(ctx, req, res.report, creds)
	switch {
	case err == nil:
		g.render(w, r, http.StatusOK, pageData{
			Title:    "Upload stored",
			User:     viewOf(info),
			Proposal: proposal,
			Notice:   fmt.Sprintf("The spreadsheet was %s as %s.", res.kind.Verb(), result.Name),
			Report:   res.block,
			Stored: &storedView{
				Name:     result.Name,
				Location: result.Location,
				StoredAt: result.StoredAt.Format(timeFormat),
			},
		})

	case errors.Is(err, upload.ErrValidationErrors):
		g.render(w, r, http.StatusOK, pageData{
			Title:    "Upload blocked",
			User:     viewOf(info),
			Proposal: proposal,
			Alert:    "The spreadsheet was not stored: fix the validation errors below and submit again.",
			Report:   res.block,
		})

	case errors.Is(err, upload.ErrAuthFailed):
		g.render(w, r, http.StatusUnauthorized, pageData{
			Title:    "Login failed",
			Proposal: proposal,
			Alert:    "The upload was not stored because the login attempt failed.",
			Report:   res.block,
		})

	case errors.Is(err, upload.ErrSessionExpired):
		g.sessionExpired(w, r, info, res.block, proposal)

	case errors.Is(err, upload.ErrStorageFailed):
		g.logger.ErrorContext(ctx, "upload storage failed",
			logger.Component("gateway"), logger.Proposal(proposal), logger.Error(err))
		g.render(w, r, storageStatus(err), pageData{
			Title:    "Upload failed",
			User:     viewOf(info),
			Proposal: proposal,
			Alert:    "The upload could not be stored; the validation report is preserved below. Try again later.",
			Report:   res.block,
		})

	default:
		g.logger.ErrorContext(ctx, "upload failed",
			logger.Component("gateway"), logger.Proposal(proposal), logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// listFiles renders the stored files of one proposal, newest first.
func (g *Gateway) listFiles(w http.ResponseWriter, r *http.Request, info sessionInfo, creds upload.Credentials, proposal string) {
	ctx := r.Context()

	if !creds.Authorized() {
		g.sessionExpired(w, r, info, nil, proposal)
		return
	}

	files, err := g.files.List(ctx, proposal)
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to list stored files",
			logger.Component("gateway"), logger.Proposal(proposal), logger.Error(err))
		g.render(w, r, storageStatus(err), pageData{
			Title:    "Listing failed",
			User:     viewOf(info),
			Proposal: proposal,
			Alert:    "The stored files could not be listed; try again later.",
		})
		return
	}

	rows := make([]fileRow, 0, len(files))
	for _, f := range files {
		rows = append(rows, fileRow{Name: f.Name, Size: f.Size, ModTime: formatModTime(f.ModTime)})
	}
	g.render(w, r, http.StatusOK, pageData{
		Title:     "Files for " + proposal,
		User:      viewOf(info),
		Proposal:  proposal,
		Files:     rows,
		ShowFiles: true,
	})
}

// inputError renders the 400 page. Input mistakes are the user's, not the
// system's, so nothing is logged as a fault.
func (g *Gateway) inputError(w http.ResponseWriter, r *http.Request, info sessionInfo, msg string) {
	g.render(w, r, http.StatusBadRequest, pageData{
		Title: "Invalid request",
		User:  viewOf(info),
		Alert: msg,
	})
}

// upstreamError renders the 502 page for failures of external
// collaborators (checker, sheet export).
func (g *Gateway) upstreamError(w http.ResponseWriter, r *http.Request, info sessionInfo, msg string) {
	g.render(w, r, http.StatusBadGateway, pageData{
		Title: "Service unavailable",
		User:  viewOf(info),
		Alert: msg,
	})
}

// sessionExpired renders the 401 page. A stale session and a never-seen
// user get different wording but the same treatment: log in again.
func (g *Gateway) sessionExpired(w http.ResponseWriter, r *http.Request, info sessionInfo, block *reportBlock, proposal string) {
	title, msg := "Login required", "You must log in first."
	if info.presented {
		title, msg = "Session expired", "Your session has expired; log in again."
	}
	g.render(w, r, http.StatusUnauthorized, pageData{
		Title:    title,
		Proposal: proposal,
		Alert:    msg,
		Report:   block,
	})
}

// storageStatus separates remote-storage faults (502) from local ones
// (500).
func storageStatus(err error) int {
	if errors.Is(err, storage.ErrUnavailable) || errors.Is(err, storage.ErrAccessDenied) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
