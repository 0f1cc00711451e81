package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Adda-Baaj/pocket-sync/internal/app"
	"github.com/Adda-Baaj/pocket-sync/internal/config"
	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
)

const usage = `usage: pocketctl [-o yaml|json] <command> [flags]

commands:
  recordings            list recordings (-folder, -tags, -since, -until, -page, -limit, -all)
  recording <id>        show one recording (-no-transcript, -no-summary, -no-action-items)
  folders               list folders
  tags                  list tags (-top n)
  audio-url <id>        print a signed audio URL
  download <id> [path]  download audio to path, or a temp file
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "pocketctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("pocketctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	format := global.String("o", "yaml", "output format (yaml or json)")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if global.NArg() == 0 {
		return fmt.Errorf("%w: command required", errUsage)
	}
	enc, err := newEncoder(*format, out)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client, err := app.NewPocket(cfg)
	if err != nil {
		return fmt.Errorf("init pocket client: %w", err)
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "recordings":
		return listRecordings(ctx, client, rest, enc)
	case "recording":
		return showRecording(ctx, client, rest, enc)
	case "folders":
		folders, err := client.Folders().List(ctx)
		if err != nil {
			return err
		}
		return enc(folders)
	case "tags":
		return listTags(ctx, client, rest, enc)
	case "audio-url":
		if len(rest) != 1 {
			return fmt.Errorf("%w: audio-url takes a recording id", errUsage)
		}
		u, err := client.Audio().URL(ctx, rest[0])
		if err != nil {
			return err
		}
		return enc(u)
	case "download":
		return download(ctx, client, rest, enc)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func listRecordings(ctx context.Context, client *pocket.Pocket, args []string, enc encoder) error {
	fs := flag.NewFlagSet("recordings", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	folder := fs.String("folder", "", "folder id")
	tags := fs.String("tags", "", "comma separated tag ids")
	since := fs.String("since", "", "start date (YYYY-MM-DD)")
	until := fs.String("until", "", "end date (YYYY-MM-DD)")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "page size (max 100)")
	all := fs.Bool("all", false, "walk every page")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	opts := pocket.ListOptions{FolderID: *folder, Page: *page, Limit: *limit, TagIDs: splitList(*tags)}
	var err error
	if opts.StartDate, err = parseDate(*since); err != nil {
		return err
	}
	if opts.EndDate, err = parseDate(*until); err != nil {
		return err
	}

	if !*all {
		result, err := client.Recordings().List(ctx, opts)
		if err != nil {
			return err
		}
		return enc(result)
	}

	recs := []pocket.Recording{}
	for rec, err := range client.Recordings().All(ctx, opts) {
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	return enc(recs)
}

func showRecording(ctx context.Context, client *pocket.Pocket, args []string, enc encoder) error {
	fs := flag.NewFlagSet("recording", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var opts pocket.GetOptions
	fs.BoolVar(&opts.ExcludeTranscript, "no-transcript", false, "omit the transcript")
	fs.BoolVar(&opts.ExcludeSummary, "no-summary", false, "omit the summary")
	fs.BoolVar(&opts.ExcludeActionItems, "no-action-items", false, "omit action items")
	if err := fs.Parse(reorder(args)); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: recording takes a recording id", errUsage)
	}

	rec, err := client.Recordings().Get(ctx, fs.Arg(0), opts)
	if err != nil {
		return err
	}
	return enc(rec)
}

func listTags(ctx context.Context, client *pocket.Pocket, args []string, enc encoder) error {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	top := fs.Int("top", 0, "only the n most used tags")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var (
		tags []pocket.Tag
		err  error
	)
	if *top > 0 {
		tags, err = client.Tags().MostUsed(ctx, *top)
	} else {
		tags, err = client.Tags().List(ctx)
	}
	if err != nil {
		return err
	}
	return enc(tags)
}

func download(ctx context.Context, client *pocket.Pocket, args []string, enc encoder) error {
	var (
		path string
		err  error
	)
	switch len(args) {
	case 1:
		path, err = client.Audio().Download(ctx, args[0])
	case 2:
		path = args[1]
		err = client.Audio().SaveToPath(ctx, args[0], path)
	default:
		return fmt.Errorf("%w: download takes a recording id and an optional path", errUsage)
	}
	if err != nil {
		return err
	}
	return enc(map[string]string{"recording_id": args[0], "path": path})
}

// reorder moves flags ahead of positional arguments so "recording <id> -no-summary" parses.
func reorder(args []string) []string {
	var flags, pos []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			flags = append(flags, a)
			continue
		}
		pos = append(pos, a)
	}
	return append(flags, pos...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	if s = strings.TrimSpace(s); s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q (want YYYY-MM-DD)", errUsage, s)
	}
	return t, nil
}
