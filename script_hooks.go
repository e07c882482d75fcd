// script_hooks.go - optional Lua scripting hooks for frame/button events

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// scriptHost runs a user-supplied Lua script alongside the emulator,
// calling its on_frame(picture_len, audio_len) and on_button(name,
// pressed) globals when present. Either hook is optional; a script
// that defines neither is accepted and simply does nothing.
type scriptHost struct {
	state    *lua.LState
	hasFrame bool
	hasBtn   bool
}

// loadScriptHost compiles and runs path once (for setup side effects)
// and records which hook functions it defined.
func loadScriptHost(path string) (*scriptHost, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("script_hooks: %w", err)
	}
	sh := &scriptHost{state: L}
	sh.hasFrame = isLuaFunction(L, "on_frame")
	sh.hasBtn = isLuaFunction(L, "on_button")
	return sh, nil
}

func isLuaFunction(L *lua.LState, name string) bool {
	_, ok := L.GetGlobal(name).(*lua.LFunction)
	return ok
}

// OnFrame is called once per console frame with the picture and audio
// buffer lengths just produced, so a script can log or react to
// silence/black-frame conditions without touching Go code.
func (sh *scriptHost) OnFrame(pictureLen, audioLen int) {
	if !sh.hasFrame {
		return
	}
	L := sh.state
	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("on_frame"),
		NRet:    0,
		Protect: true,
	}, lua.LNumber(pictureLen), lua.LNumber(audioLen)); err != nil {
		fmt.Printf("script_hooks: on_frame error: %v\n", err)
	}
}

// OnButton is called whenever a front-panel or controller button's
// pressed state changes.
func (sh *scriptHost) OnButton(name string, pressed bool) {
	if !sh.hasBtn {
		return
	}
	L := sh.state
	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("on_button"),
		NRet:    0,
		Protect: true,
	}, lua.LString(name), lua.LBool(pressed)); err != nil {
		fmt.Printf("script_hooks: on_button error: %v\n", err)
	}
}

func (sh *scriptHost) Close() {
	sh.state.Close()
}
