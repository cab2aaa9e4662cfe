package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipkit/internal/prompt"
	"github.com/ariel-frischer/shipkit/internal/registry"
)

func TestResolveTemplateArgs(t *testing.T) {
	t.Parallel()

	reg := registry.Default()

	tests := map[string]struct {
		args         []string
		prompter     *prompt.Scripted
		wantCategory string
		wantTemplate string
		wantErr      bool
	}{
		"both supplied": {
			args:         []string{"be", "node"},
			prompter:     &prompt.Scripted{},
			wantCategory: "be",
			wantTemplate: "node",
		},
		"category supplied, template prompted": {
			args:         []string{"fe"},
			prompter:     &prompt.Scripted{Choices: []int{1}},
			wantCategory: "fe",
			wantTemplate: "vanilla",
		},
		"both prompted": {
			args:         nil,
			prompter:     &prompt.Scripted{Choices: []int{2, 0}},
			wantCategory: "github",
			wantTemplate: "workflows",
		},
		"unknown category arg": {
			args:     []string{"mobile"},
			prompter: &prompt.Scripted{},
			wantErr:  true,
		},
		"prompt exhausted": {
			args:     nil,
			prompter: &prompt.Scripted{},
			wantErr:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cat, tpl, err := resolveTemplateArgs(reg, tt.args, tt.prompter)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, cat)
			assert.Equal(t, tt.wantTemplate, tpl)
		})
	}
}

func TestRunTemplate_WritesInstructions(t *testing.T) {
	dest := t.TempDir()

	origDest := templateDestFlag
	templateDestFlag = dest
	defer func() { templateDestFlag = origDest }()

	var buf bytes.Buffer
	templateCmd.SetOut(&buf)
	defer templateCmd.SetOut(nil)

	err := runTemplate(templateCmd, []string{"be", "python"}, &prompt.Scripted{})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, ".github", "instructions.md"))
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Contains(t, buf.String(), "Instructions written to")
}

func TestRunTemplate_UnknownTemplate(t *testing.T) {
	dest := t.TempDir()

	origDest := templateDestFlag
	templateDestFlag = dest
	defer func() { templateDestFlag = origDest }()

	err := runTemplate(templateCmd, []string{"be", "rust"}, &prompt.Scripted{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dest, ".github"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be written for unknown templates")
}

func TestRunTemplateList(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args    []string
		want    []string
		wantErr bool
	}{
		"all templates in composite form": {
			args: nil,
			want: []string{"fe/react", "fe/vanilla", "be/node", "be/python", "github/workflows"},
		},
		"single category": {
			args: []string{"fe"},
			want: []string{"react", "vanilla"},
		},
		"unknown category": {
			args:    []string{"mobile"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)

			err := runTemplateList(cmd, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
