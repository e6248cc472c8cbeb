package popupctl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/xiamiu/internal/keymap"
	"github.com/llehouerou/xiamiu/internal/ui/action"
	"github.com/llehouerou/xiamiu/internal/ui/confirm"
	"github.com/llehouerou/xiamiu/internal/ui/testutil"
	"github.com/llehouerou/xiamiu/internal/ui/textinput"
)

func newManager() *Manager {
	p := New()
	p.SetSize(100, 30)
	return p
}

func TestManager_Priority(t *testing.T) {
	p := newManager()
	assert.Equal(t, None, p.ActivePopup())

	p.ShowTextInput(InputSearch, "Search", []textinput.Field{{}}, nil)
	assert.Equal(t, TextInput, p.ActivePopup())
	assert.Equal(t, InputSearch, p.InputMode())

	p.ShowHelp([]string{keymap.ContextGlobal})
	assert.Equal(t, Help, p.ActivePopup())

	p.ShowError("boom")
	assert.Equal(t, Error, p.ActivePopup())

	p.Hide(Error)
	p.Hide(Help)
	p.Hide(TextInput)
	assert.Equal(t, None, p.ActivePopup())
	assert.Equal(t, InputNone, p.InputMode())
}

func TestManager_ErrorDismissedByAnyKey(t *testing.T) {
	p := newManager()
	p.ShowError("boom")

	handled, cmd := p.HandleKey(testutil.Key("x"))
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Empty(t, p.ErrorMsg())
}

func TestManager_RoutesKeysToTextInput(t *testing.T) {
	p := newManager()
	p.ShowTextInput(InputFilter, "Filter", []textinput.Field{{}}, "ctx")

	p.HandleKey(testutil.Key("ab"))
	handled, cmd := p.HandleKey(testutil.Key("enter"))
	require.True(t, handled)
	require.NotNil(t, cmd)

	msg, ok := cmd().(action.Msg)
	require.True(t, ok)
	res, ok := msg.Action.(textinput.Result)
	require.True(t, ok)
	assert.Equal(t, "ab", res.Value(0))
	assert.Equal(t, "ctx", res.Context)
}

func TestManager_ConfirmAnswer(t *testing.T) {
	p := newManager()
	p.ShowTextInput(InputSearch, "Search", []textinput.Field{{}}, nil)
	p.ShowConfirm("Delete comment?", "Great record", 42)
	assert.Equal(t, Confirm, p.ActivePopup())

	handled, cmd := p.HandleKey(testutil.Key("y"))
	require.True(t, handled)
	require.NotNil(t, cmd)

	msg, ok := cmd().(action.Msg)
	require.True(t, ok)
	assert.Equal(t, confirm.Source, msg.Source)
	res, ok := msg.Action.(confirm.Result)
	require.True(t, ok)
	assert.True(t, res.Confirmed)
	assert.Equal(t, 42, res.Context)

	p.Hide(Confirm)
	assert.Equal(t, TextInput, p.ActivePopup())
}

func TestManager_NoPopupDoesNotHandle(t *testing.T) {
	p := newManager()
	handled, _ := p.HandleKey(testutil.Key("j"))
	assert.False(t, handled)
}

func TestManager_RenderOverlay(t *testing.T) {
	p := newManager()
	base := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 30), "\n")

	assert.Equal(t, base, p.RenderOverlay(base))

	p.ShowError("catalog unreachable")
	out := testutil.StripANSI(p.RenderOverlay(base))
	assert.Contains(t, out, "catalog unreachable")
	assert.Contains(t, out, "Error")
	assert.Len(t, strings.Split(out, "\n"), 30)
}
