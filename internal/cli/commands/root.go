package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// errDiagnostics is returned when a run reported error diagnostics. They have
// already been printed, so Execute only sets the exit code.
var errDiagnostics = errors.New("generation reported errors")

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modulegen",
		Short: "Native module registration generator for React Native Windows",
		Long: color.CyanString(`modulegen - React Native Windows module registration generator

modulegen reads symbol snapshots of a compiled C# project, finds the types
marked as native modules and view managers, validates their members and
writes the ReactPackageProvider that registers them with the host.

Generated registrations:
  • View managers
  • Native modules with methods, constants, events and functions
  • Serializers for every type that crosses the script boundary
  • Custom reader and writer extension methods`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	}

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the modulegen version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			writeVersion(cmd.OutOrStdout())
		},
	}
}

func writeVersion(w io.Writer) {
	// Set GoVersion to actual runtime if not set at build time
	goVer := GoVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	rows := [][2]string{
		{"modulegen version: ", Version},
		{"Git commit: ", GitCommit},
		{"Build date: ", BuildDate},
		{"Go version: ", goVer},
	}
	for _, row := range rows {
		titleColor.Fprint(w, row[0])
		fmt.Fprintln(w, row[1])
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
