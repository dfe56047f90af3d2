package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"localesite/internal/i18n"
)

var (
	bundleDir     string
	defaultLocale string
	localeList    string
	strictExtra   bool
)

var errMissingKeys = errors.New("translation bundles are incomplete")

var rootCmd = &cobra.Command{
	Use:   "bundlecheck",
	Short: "Checks translation bundles for missing keys",
	Long: `bundlecheck compares every locale's translation.json against the default
locale and reports keys that are missing or unknown.

Without --dir the bundles compiled into the server are checked.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var fsys fs.FS = i18n.EmbeddedBundles()
		if bundleDir != "" {
			fsys = os.DirFS(bundleDir)
		}
		locales := splitLocales(localeList)
		return checkBundles(cmd.OutOrStdout(), fsys, defaultLocale, locales, strictExtra)
	},
}

func init() {
	rootCmd.Flags().StringVar(&bundleDir, "dir", "", "locales directory (default: embedded bundles)")
	rootCmd.Flags().StringVar(&defaultLocale, "default", "en", "reference locale")
	rootCmd.Flags().StringVar(&localeList, "locales", "", "comma-separated locales to check (default: every directory)")
	rootCmd.Flags().BoolVar(&strictExtra, "strict", false, "also fail on keys the reference locale does not have")
}

func splitLocales(val string) []string {
	var out []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// discoverLocales lists the directories of fsys that hold a bundle file.
func discoverLocales(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(fsys, e.Name()+"/"+i18n.BundleFile); err == nil {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func checkBundles(w io.Writer, fsys fs.FS, def string, locales []string, strict bool) error {
	base, err := i18n.LoadBundle(fsys, def)
	if err != nil {
		return fmt.Errorf("load reference locale %s: %w", def, err)
	}

	if len(locales) == 0 {
		locales, err = discoverLocales(fsys)
		if err != nil {
			return fmt.Errorf("list locales: %w", err)
		}
	}

	failed := false
	for _, locale := range locales {
		if locale == def {
			continue
		}
		msgs, err := i18n.LoadBundle(fsys, locale)
		if err != nil {
			fmt.Fprintf(w, "[-] %s: %v\n", locale, err)
			failed = true
			continue
		}

		missing, extra := i18n.Diff(base, msgs)
		if len(missing) == 0 && len(extra) == 0 {
			fmt.Fprintf(w, "[+] %s: %d keys\n", locale, len(msgs))
			continue
		}

		fmt.Fprintf(w, "[-] %s: %d missing, %d extra\n", locale, len(missing), len(extra))
		for _, k := range missing {
			fmt.Fprintf(w, "      missing %s\n", k)
		}
		for _, k := range extra {
			fmt.Fprintf(w, "      extra   %s\n", k)
		}
		if len(missing) > 0 || strict {
			failed = true
		}
	}

	if failed {
		return errMissingKeys
	}
	return nil
}
