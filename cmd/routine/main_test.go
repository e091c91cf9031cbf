package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "routine" {
		t.Fatalf("expected root command name routine, got %q", rootCmd.Use)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := []string{"add", "list", "show", "start", "done", "reopen", "status", "edit",
		"check", "item", "delete", "expire", "history", "preset", "watch", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}
