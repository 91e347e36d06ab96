package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/sdkgen/internal/codegen"
	"github.com/okra-platform/sdkgen/internal/config"
	"github.com/okra-platform/sdkgen/internal/emit"
	"github.com/okra-platform/sdkgen/internal/templates"
)

// TemplatesDir is where init-config copies the default templates, relative
// to the project directory
const TemplatesDir = "templates"

// ErrConfigExists is returned when the target directory already has a
// sdkgen.json
var ErrConfigExists = errors.New(config.FileName + " already exists")

// InitOptions are the answers that shape the new sdkgen.json
type InitOptions struct {
	Registry   string
	Language   string
	SDKRoot    string
	ClientRoot string
	Format     bool
}

// InitCommand writes a starter sdkgen.json and the default templates
type InitCommand struct {
	dir         string
	interactive bool
	controller  *Controller
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

// NewInitCommand creates an init command for dir
func NewInitCommand(c *Controller, dir string, interactive bool) *InitCommand {
	return &InitCommand{
		dir:         dir,
		interactive: interactive,
		controller:  c,
	}
}

// InitConfig writes sdkgen.json and the default templates into dir
func (c *Controller) InitConfig(ctx context.Context, dir string, interactive bool) error {
	return NewInitCommand(c, dir, interactive).Run(ctx)
}

// Run executes the command
func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

// RunWithOptions executes the command; opts are passed to the prompt
// program when running interactively
func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	configPath := filepath.Join(ic.dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%w in %s", ErrConfigExists, ic.dir)
	}

	options := ic.defaults()
	switch {
	case ic.testOptions != nil:
		options = ic.testOptions
	case ic.interactive:
		var err error
		options, err = ic.promptInitOptions(options, opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Registry = options.Registry
	cfg.Language = options.Language
	cfg.SDKRoot = options.SDKRoot
	cfg.ClientRoot = options.ClientRoot
	cfg.Format = options.Format
	cfg.Templates = "./" + TemplatesDir

	if err := ic.writeTemplates(); err != nil {
		return err
	}
	if err := os.MkdirAll(ic.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", ic.dir, err)
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	ic.controller.Logger.Info().Str("path", configPath).Msg("created configuration")
	return nil
}

// defaults seeds the answers from the controller's flags
func (ic *InitCommand) defaults() *InitOptions {
	def := config.Default()
	options := &InitOptions{
		Registry:   def.Registry,
		Language:   def.Language,
		SDKRoot:    def.SDKRoot,
		ClientRoot: def.ClientRoot,
	}

	flags := ic.controller.Flags
	if flags == nil {
		return options
	}
	if flags.Registry != "" {
		options.Registry = flags.Registry
	}
	if flags.Language != "" {
		options.Language = flags.Language
	}
	if flags.SDKRoot != "" {
		options.SDKRoot = flags.SDKRoot
	}
	if flags.ClientRoot != "" {
		options.ClientRoot = flags.ClientRoot
	}
	options.Format = flags.Format
	return options
}

// writeTemplates copies the embedded templates through the emitter so an
// unchanged template is left alone
func (ic *InitCommand) writeTemplates() error {
	emitter := emit.New(emit.Options{CreateDirs: true}, ic.controller.Logger)
	store := templates.EmbeddedStore{}

	for _, name := range templates.Names() {
		text, err := store.Load(name)
		if err != nil {
			return err
		}
		f := emit.File{
			Path:    filepath.Join(ic.dir, TemplatesDir, name),
			Content: text,
		}
		if _, err := emitter.Write(f); err != nil {
			return err
		}
	}
	return nil
}

func (ic *InitCommand) promptInitOptions(seed *InitOptions, opts ...tea.ProgramOption) (*InitOptions, error) {
	answers := *seed
	form := ic.createInitForm(&answers)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return &answers, nil
}

func (ic *InitCommand) createInitForm(answers *InitOptions) *huh.Form {
	languages := codegen.DefaultRegistry.Languages()
	languageOptions := make([]huh.Option[string], 0, len(languages))
	for _, l := range languages {
		languageOptions = append(languageOptions, huh.NewOption(l, l))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Registry").
				Description("YAML file with the endpoint and option records").
				Value(&answers.Registry).
				Validate(validatePath),

			huh.NewSelect[string]().
				Title("Language").
				Description("Generator used for the output files").
				Options(languageOptions...).
				Value(&answers.Language),

			huh.NewInput().
				Title("SDK root").
				Description("Folder for the per-route SDK files").
				Value(&answers.SDKRoot).
				Validate(validatePath),

			huh.NewInput().
				Title("Client root").
				Description("Folder for the per-route options files").
				Value(&answers.ClientRoot).
				Validate(validatePath),

			huh.NewConfirm().
				Title("Format generated code?").
				Value(&answers.Format),
		),
	)
}

func validatePath(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("path cannot be empty")
	}
	return nil
}
