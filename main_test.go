package main

import "testing"

func TestCommandTree(t *testing.T) {
	expected := []string{
		"list", "add", "update", "rm", "import",
		"export", "report", "register", "login", "logout",
	}

	cmds := subCmds()
	if len(cmds) != len(expected) {
		t.Fatalf("got %d subcommands, want %d", len(cmds), len(expected))
	}

	for i, want := range expected {
		cmd := cmds[i].ToCobra()
		if cmd.Name() != want {
			t.Errorf("subcommand %d = %q, want %q", i, cmd.Name(), want)
		}
		if cmd.Short == "" {
			t.Errorf("subcommand %q has no short description", cmd.Name())
		}
	}
}
