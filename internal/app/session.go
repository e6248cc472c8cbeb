package app

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/app/popupctl"
	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/errmsg"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/ui/textinput"
)

// restoreSession reads the remembered login token.
func (m *Model) restoreSession() {
	if !m.remember || m.env.state == nil {
		return
	}
	stored, err := m.env.state.GetSession()
	if err != nil {
		m.env.log.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
		return
	}
	if stored == nil || !stored.Valid() {
		return
	}
	sess := stored.Session
	m.session = &sess
}

// checkSessionCmd asks the API who the restored token belongs to.
func (m Model) checkSessionCmd() tea.Cmd {
	if !m.session.Valid() {
		return nil
	}
	c, sess := m.env.catalog, *m.session
	ctx, cancel := m.env.ctx()
	return func() tea.Msg {
		defer cancel()
		u, err := c.CurrentUser(ctx, &sess)
		return sessionCheckedMsg{Token: sess.AccessToken, User: u, Err: err}
	}
}

func (m *Model) handleSessionChecked(msg sessionCheckedMsg) tea.Cmd {
	if !m.session.Valid() || m.session.AccessToken != msg.Token {
		return nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			m.env.log.Info("remembered session rejected")
			m.dropSession()
			m.setStatus("Session expired, press L to log in", true)
			return m.refreshMyMusic()
		}
		m.env.log.Warn(errmsg.Format(errmsg.OpSessionLoad, msg.Err))
		return nil
	}
	u := msg.User
	m.user = &u
	return nil
}

// me returns the logged-in user id, 0 when unknown.
func (m Model) me() int {
	if m.user == nil {
		return 0
	}
	return m.user.ID
}

// toggleLogin opens the login form, or logs out when logged in.
func (m *Model) toggleLogin() tea.Cmd {
	if m.session.Valid() {
		return m.logout()
	}
	return m.promptLogin("Log in")
}

func (m *Model) promptLogin(title string) tea.Cmd {
	var username string
	if m.session != nil {
		username = m.session.Username
	}
	return m.Popups.ShowTextInput(popupctl.InputLogin, title, []textinput.Field{
		{Label: "Username", Value: username, CharLimit: 64},
		{Label: "Password", Password: true, CharLimit: 128},
	}, nil)
}

func (m *Model) loginCmd(username, password string) tea.Cmd {
	c := m.env.catalog
	ctx, cancel := m.env.ctx()
	return func() tea.Msg {
		defer cancel()
		sess, err := c.Login(ctx, username, password)
		if err != nil {
			return loginMsg{Err: err}
		}
		u, err := c.CurrentUser(ctx, &sess)
		if err != nil {
			return loginMsg{Err: err}
		}
		return loginMsg{Session: sess, User: u}
	}
}

func (m *Model) handleLogin(msg loginMsg) tea.Cmd {
	if msg.Err != nil {
		m.env.log.Warn("login failed", zap.Error(msg.Err))
		text := errmsg.Format(errmsg.OpLogin, msg.Err)
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			text = "Wrong username or password."
		}
		m.Popups.ShowError(text)
		return nil
	}

	sess, u := msg.Session, msg.User
	m.session = &sess
	m.user = &u
	if m.remember && m.env.state != nil {
		if err := m.env.state.SaveSession(sess); err != nil {
			m.env.log.Warn("could not remember session", zap.Error(err))
		}
	}
	m.env.log.Info("logged in", zap.String("user", u.UserName))
	m.setStatus("Logged in as "+u.UserName, false)
	return m.refreshMyMusic()
}

func (m *Model) logout() tea.Cmd {
	m.dropSession()
	m.setStatus("Logged out", false)
	return m.refreshMyMusic()
}

// dropSession forgets the session here and in the state database.
func (m *Model) dropSession() {
	m.session = nil
	m.user = nil
	if m.env.state == nil {
		return
	}
	if err := m.env.state.DeleteSession(); err != nil {
		m.env.log.Warn(errmsg.Format(errmsg.OpLogout, err))
	}
}

// refreshMyMusic reloads the profile page after the session changed.
func (m *Model) refreshMyMusic() tea.Cmd {
	if m.route.Kind != navctl.KindMyMusic {
		return nil
	}
	return m.openDetail(m.route)
}

// actionFailed reports a failed user action. A rejected session opens the
// login form.
func (m *Model) actionFailed(op errmsg.Op, err error) tea.Cmd {
	m.env.log.Warn(string(op)+" failed", zap.Error(err))
	if errors.Is(err, api.ErrUnauthorized) {
		m.dropSession()
		return m.promptLogin("Session expired, log in again")
	}
	m.Popups.ShowError(errmsg.Format(op, err))
	return nil
}

// promptComment opens the comment form for the current page.
func (m *Model) promptComment() tea.Cmd {
	p := m.detail
	if p == nil || p.status != listview.StatusReady || p.target == "" {
		m.setStatus("Nothing to comment on here", false)
		return nil
	}
	if !m.session.Valid() {
		return m.promptLogin("Log in to comment")
	}
	fields := []textinput.Field{{Label: "Comment", Placeholder: "What do you think?", CharLimit: 500}}
	if p.target.Rated() {
		fields = append(fields, textinput.Field{
			Label:     "Stars (1-" + strconv.Itoa(catalog.MaxStars) + ")",
			Value:     strconv.Itoa(catalog.MaxStars),
			CharLimit: 1,
		})
	}
	return m.Popups.ShowTextInput(popupctl.InputComment, "Comment on "+p.title, fields, p.version)
}

func (m *Model) submitComment(res textinput.Result) tea.Cmd {
	p := m.detail
	version, _ := res.Context.(uint64)
	if p == nil || p.version != version {
		return nil
	}
	text := strings.TrimSpace(res.Value(0))
	if text == "" {
		m.setStatus("Empty comment discarded", false)
		return nil
	}
	stars := 1
	if p.target.Rated() {
		if n, err := strconv.Atoi(strings.TrimSpace(res.Value(1))); err == nil {
			stars = catalog.ClampStars(n)
		}
	}

	c, sess := m.env.catalog, m.session
	target, id := p.target, p.targetID
	ctx, cancel := m.env.ctx()
	return func() tea.Msg {
		defer cancel()
		comment, err := c.AddComment(ctx, sess, target, id, text, stars)
		return commentPostedMsg{Version: version, Comment: comment, Err: err}
	}
}

func (m *Model) handleCommentPosted(msg commentPostedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.actionFailed(errmsg.OpCommentPost, msg.Err)
	}
	m.setStatus("Comment posted", false)
	if p := m.detail; p != nil && p.version == msg.Version {
		p.addComment(msg.Comment)
	}
	return nil
}

// deleteComment asks before removing the comment under the cursor if it is
// the user's.
func (m *Model) deleteComment() tea.Cmd {
	p := m.detail
	if p == nil {
		return nil
	}
	comment, ok := p.selectedComment()
	if !ok {
		return nil
	}
	if !m.session.Valid() {
		return m.promptLogin("Log in to delete your comments")
	}
	if comment.UserID != m.me() {
		m.setStatus("You can only delete your own comments", true)
		return nil
	}
	return m.Popups.ShowConfirm("Delete comment?", comment.Comment,
		deleteRequest{version: p.version, comment: *comment})
}

// deleteRequest is the context of the delete confirmation.
type deleteRequest struct {
	version uint64
	comment catalog.Comment
}

// confirmDelete sends the deletion once confirmed, unless the page changed
// in the meantime.
func (m *Model) confirmDelete(req deleteRequest) tea.Cmd {
	if p := m.detail; p == nil || p.version != req.version || !m.session.Valid() {
		return nil
	}

	c, sess := m.env.catalog, m.session
	target, id, version := req.comment.Target(), req.comment.ID, req.version
	ctx, cancel := m.env.ctx()
	return func() tea.Msg {
		defer cancel()
		err := c.DeleteComment(ctx, sess, target, id)
		return commentDeletedMsg{Version: version, ID: id, Err: err}
	}
}

func (m *Model) handleCommentDeleted(msg commentDeletedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.actionFailed(errmsg.OpCommentDelete, msg.Err)
	}
	m.setStatus("Comment deleted", false)
	if p := m.detail; p != nil && p.version == msg.Version {
		p.removeComment(msg.ID)
	}
	return nil
}
