// Package luahook adjusts fence parameters with a Lua script.
//
// The script defines a global function adjust(p) that receives a table with
// the fields language, title, reference, fold, placeholder, ignore, offset and
// hl (the default highlight rule list). It may modify p in place or return a
// new table.
//
//	function adjust(p)
//	  if p.language == "run-python" then p.language = "python" end
//	  return p
//	end
package luahook

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/iw2rmb/codefence/fence"
)

const (
	entryPoint = "adjust"

	// DefaultTimeout bounds one call of adjust.
	DefaultTimeout = 100 * time.Millisecond
)

// Adjuster runs a script's adjust function. It implements fence.Adjuster and
// is safe for concurrent use.
type Adjuster struct {
	mu      sync.Mutex
	state   *lua.LState
	name    string
	timeout time.Duration
	log     zerolog.Logger
}

var _ fence.Adjuster = (*Adjuster)(nil)

// Load compiles the script at path.
func Load(path string, log zerolog.Logger) (*Adjuster, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return New(path, string(src), log)
}

// New compiles source. name identifies the script in errors and logs.
func New(name, source string, log zerolog.Logger) (*Adjuster, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	if fn := L.GetGlobal(entryPoint); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("load script %s: global %q is not a function (got %s)", name, entryPoint, fn.Type())
	}
	return &Adjuster{
		state:   L,
		name:    name,
		timeout: DefaultTimeout,
		log:     log.With().Str("script", name).Logger(),
	}, nil
}

// openSafeLibraries opens the libraries that cannot reach the file system
// or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Adjust calls the script. When the call fails p is returned unchanged.
func (a *Adjuster) Adjust(p fence.Parameters) fence.Parameters {
	a.mu.Lock()
	defer a.mu.Unlock()

	out, err := a.call(p)
	if err != nil {
		a.log.Warn().Err(err).Str("language", p.Language).Msg("adjust failed")
		return p
	}
	return out
}

func (a *Adjuster) call(p fence.Parameters) (out fence.Parameters, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	a.state.SetContext(ctx)
	defer a.state.RemoveContext()

	in := toTable(a.state, p)
	top := a.state.GetTop()
	a.state.Push(a.state.GetGlobal(entryPoint))
	a.state.Push(in)
	if err := a.state.PCall(1, 1, nil); err != nil {
		a.state.SetTop(top)
		return p, err
	}
	ret := a.state.Get(-1)
	a.state.SetTop(top)

	switch ret := ret.(type) {
	case *lua.LTable:
		return fromTable(ret, p), nil
	case *lua.LNilType:
		return fromTable(in, p), nil
	default:
		return p, fmt.Errorf("adjust returned %s, want table or nil", ret.Type())
	}
}

// Close releases the Lua state.
func (a *Adjuster) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Close()
}

func toTable(L *lua.LState, p fence.Parameters) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("language", lua.LString(p.Language))
	t.RawSetString("title", lua.LString(p.Title))
	t.RawSetString("reference", lua.LString(p.Reference))
	t.RawSetString("fold", lua.LBool(p.Fold.Enabled))
	t.RawSetString("placeholder", lua.LString(p.Fold.Placeholder))
	t.RawSetString("ignore", lua.LBool(p.Ignore))
	t.RawSetString("offset", lua.LNumber(p.LineNumbers.Offset))
	t.RawSetString("hl", lua.LString(p.Highlights.Default.String()))
	return t
}

// fromTable applies the fields of t over p. Fields of the wrong type are
// ignored.
func fromTable(t *lua.LTable, p fence.Parameters) fence.Parameters {
	str := func(key string, dst *string) {
		if v, ok := t.RawGetString(key).(lua.LString); ok {
			*dst = string(v)
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := t.RawGetString(key).(lua.LBool); ok {
			*dst = bool(v)
		}
	}

	str("language", &p.Language)
	str("title", &p.Title)
	str("reference", &p.Reference)
	boolean("fold", &p.Fold.Enabled)
	str("placeholder", &p.Fold.Placeholder)
	boolean("ignore", &p.Ignore)
	if v, ok := t.RawGetString("offset").(lua.LNumber); ok {
		p.LineNumbers.Offset = int(v)
	}

	hl := p.Highlights.Default.String()
	str("hl", &hl)
	if hl != p.Highlights.Default.String() {
		p.Highlights.Default = fence.ParseRules(hl)
	}
	return p
}
