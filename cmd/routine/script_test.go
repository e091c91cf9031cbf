package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/routine/internal/testsupport"
)

func runScripts(t *testing.T, dir string) {
	t.Helper()
	testscript.Run(t, testscript.Params{
		Dir: dir,
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"envset": testsupport.CmdEnvSet,
			"taskid": testsupport.CmdTaskID,
			"itemid": testsupport.CmdItemID,
		},
	})
}

func TestTaskScripts(t *testing.T) {
	runScripts(t, "testdata/tasks")
}

func TestChecklistScripts(t *testing.T) {
	runScripts(t, "testdata/checklist")
}

func TestPresetScripts(t *testing.T) {
	runScripts(t, "testdata/presets")
}

func TestStorageScripts(t *testing.T) {
	runScripts(t, "testdata/storage")
}

func TestVersionScripts(t *testing.T) {
	runScripts(t, "testdata/version")
}
