package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/loader"
	"github.com/zhubert/parley/internal/sections"
	"github.com/zhubert/parley/internal/session"
)

var (
	sectionsPageSize int
	sectionsOlder    int
	sectionsAround   int64
	sectionsReveal   bool
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <history.json>",
	Short: "Print how a history is partitioned into sections and runs",
	Long: `Loads the newest page of a history the way the viewer does, optionally
pages further back or jumps to an item, and prints the resulting sections:
their areas and index ranges, the merged runs inside them and the number of
visible rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	sectionsCmd.Flags().IntVarP(&sectionsPageSize, "page", "p", 0, "Items per page (defaults to page_size from the config)")
	sectionsCmd.Flags().IntVar(&sectionsOlder, "older", 0, "Number of older pages to load above the newest one")
	sectionsCmd.Flags().Int64Var(&sectionsAround, "around", 0, "Also load a page around this item ID")
	sectionsCmd.Flags().BoolVar(&sectionsReveal, "reveal", false, "Expand every merged run")
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	pageSize := sectionsPageSize
	if pageSize <= 0 {
		pageSize = cfg.GetPageSize()
	}

	archive, f, err := loadArchive(args[0])
	if err != nil {
		return err
	}

	list, err := partition(cmd.Context(), partitionOptions{
		fetcher:  archive,
		info:     f.Chat,
		rh:       cfg.GetRemoteHostID(),
		pageSize: pageSize,
		capacity: cfg.GetSectionCapacity(),
		older:    sectionsOlder,
		around:   chat.ItemID(sectionsAround),
		reveal:   sectionsReveal,
	})
	if err != nil {
		return err
	}
	printSections(cmd.OutOrStdout(), f.Chat, list)
	return nil
}

type partitionOptions struct {
	fetcher  history.Fetcher
	info     chat.Info
	rh       *int64
	pageSize int
	capacity int
	older    int
	around   chat.ItemID
	reveal   bool
}

// partition loads pages into a session the way the viewer does, with every
// session access on a main loop, and returns the final section list.
func partition(ctx context.Context, o partitionOptions) (sections.List, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loop := loader.NewMainLoop()
	defer loop.Stop()

	sess := session.New(o.capacity)
	loop.Do(func() { sess.Open(o.info) })

	bottom := loader.NewBottom(o.fetcher, o.pageSize)
	bottom.Load(ctx, loop, sess, o.info, o.rh)
	var loaded int
	loop.Do(func() { loaded = sess.Store().Len() })
	if loaded == 0 {
		return nil, perrors.E(perrors.Op("cmd.partition"), perrors.KindNotFound, fmt.Sprintf("chat %s has no items to load", o.info.ID))
	}

	area := loader.NewArea(o.fetcher, o.pageSize)
	for range o.older {
		var fetch func() loader.PageMsg
		loop.Do(func() {
			sess.Rebuild()
			if cmd := area.Older(ctx, sess, o.rh); cmd != nil {
				fetch = func() loader.PageMsg { return cmd().(loader.PageMsg) }
			}
		})
		if fetch == nil {
			break
		}
		msg := fetch()
		if msg.Err != nil {
			return nil, msg.Err
		}
		loop.Do(func() { area.Apply(sess, msg) })
	}

	if o.around != 0 {
		msg := area.Around(ctx, o.info, o.rh, o.around)().(loader.PageMsg)
		if msg.Err != nil {
			return nil, msg.Err
		}
		loop.Do(func() { area.Apply(sess, msg) })
	}

	var list sections.List
	loop.Do(func() {
		list = sess.Rebuild()
		if !o.reveal {
			return
		}
		for _, s := range list {
			for _, r := range s.Runs {
				if !r.Revealed {
					sess.ToggleReveal(r.Items[0].ID)
				}
			}
		}
		list = sess.Sections()
	})
	return list, nil
}

// printSections writes a human-readable dump of list.
func printSections(w io.Writer, info chat.Info, list sections.List) {
	items := 0
	for _, s := range list {
		items += s.Boundary.Span()
	}
	fmt.Fprintf(w, "%s (%s): %d items, %d sections, %d rows\n",
		info.Name, info.Type, items, len(list), list.RevealedItemCount())

	for i, s := range list {
		fmt.Fprintf(w, "\nsection %d  %-11s  index %d..%d\n", i, s.Boundary.Area, s.Boundary.MinIndex, s.Boundary.MaxIndex)
		for j, r := range s.Runs {
			category := string(r.Category)
			if category == "" {
				category = "messages"
			}
			state := "revealed"
			if r.Collapsed() {
				state = "collapsed"
			}
			fmt.Fprintf(w, "  run %-3d %-16s %3d items  [%d..%d]  %s%s\n",
				j, category, len(r.Items), r.Range.First, r.Range.Last, state, avatars(r))
		}
	}
}

func avatars(r *sections.Run) string {
	var names []string
	for _, it := range r.Items {
		if r.ShowAvatar[it.ID] && it.Dir.Member != nil {
			names = append(names, it.Dir.Member.DisplayName)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "  avatars: " + strings.Join(names, ", ")
}
