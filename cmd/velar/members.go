package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"velar/internal/diag"
	"velar/internal/hierfile"
	"velar/internal/lower"
	"velar/internal/project"
	"velar/internal/snapshot"
	"velar/internal/testkit"
)

var (
	membersSnapshot bool
	membersCheck    bool
	membersNoCache  bool
)

var membersCmd = &cobra.Command{
	Use:   "members [hierarchy.yaml ...]",
	Short: "Lower class hierarchies and print complete member tables",
	Long: `Loads hierarchy descriptions, synthesizes fake overrides for every
inherited member and prints the resulting per-class member tables.
With no arguments the hierarchies listed in velar.toml are used.`,
	RunE: runMembers,
}

func init() {
	membersCmd.Flags().BoolVar(&membersSnapshot, "snapshot", false, "cache lowered tables on disk, keyed by source digest")
	membersCmd.Flags().BoolVar(&membersCheck, "check", false, "run member-table invariant checks after linking")
	membersCmd.Flags().BoolVar(&membersNoCache, "no-cache", false, "ignore existing snapshot entries")
}

func runMembers(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		manifestPath, err := project.Find(".")
		if err != nil {
			return err
		}
		manifest, err := project.Load(manifestPath)
		if err != nil {
			return err
		}
		paths = manifest.HierarchyPaths()
	}
	if len(paths) == 0 {
		return fmt.Errorf("no hierarchy files to process")
	}

	var cache *snapshot.Cache
	if membersSnapshot {
		var err error
		cache, err = snapshot.Open("velar")
		if err != nil {
			return err
		}
	}

	colored := useColor(cmd)
	quiet, _ := cmd.Flags().GetBool("quiet")
	for _, path := range paths {
		payload, err := lowerOne(path, cache)
		if err != nil {
			return err
		}
		if payload == nil {
			continue // diagnostics already printed
		}
		if !quiet {
			renderPayload(cmd.OutOrStdout(), path, payload, colored)
		}
	}
	return nil
}

// lowerOne loads and lowers a single hierarchy file, consulting the
// snapshot cache when enabled. A nil payload with nil error means the
// file had load errors.
func lowerOne(path string, cache *snapshot.Cache) (*snapshot.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	digest := snapshot.DigestOf(data)
	if cache != nil && !membersNoCache {
		if payload, ok, err := cache.Get(digest); err != nil {
			return nil, err
		} else if ok {
			return payload, nil
		}
	}

	bag := diag.NewBag(100)
	semMod := hierfile.Load(path, data, bag)
	for _, d := range bag.Items() {
		fmt.Fprintln(os.Stderr, d)
	}
	if semMod == nil || bag.HasErrors() {
		return nil, nil
	}

	res := lower.Module(semMod)
	if membersCheck {
		if err := testkit.CheckMemberTableInvariants(semMod, res.IR); err != nil {
			return nil, fmt.Errorf("%s: invariant check failed: %w", path, err)
		}
	}
	payload := snapshot.Build(semMod, res, digest, res.SessionID)
	if cache != nil {
		if err := cache.Put(payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
