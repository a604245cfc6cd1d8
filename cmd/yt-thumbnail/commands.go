package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/alanbriolat/yt-thumbnail"
	"github.com/alanbriolat/yt-thumbnail/async"
	"github.com/alanbriolat/yt-thumbnail/generic"
	"github.com/alanbriolat/yt-thumbnail/internal/prefs"
	"github.com/alanbriolat/yt-thumbnail/videoid"
)

var (
	errMissingURL   = errors.New("missing URL argument")
	errCopyConflict = errors.New("--copy-id and --copy both use the clipboard, choose one")
)

const defaultClipboardHold = 30 * time.Second

func (a *application) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "id",
			Usage:     "print the video ID of a YouTube URL",
			ArgsUsage: "URL",
			Action:    a.id,
		},
		{
			Name:      "get",
			Usage:     "show the thumbnails and share links of a YouTube URL",
			ArgsUsage: "URL",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "copy-id",
					Usage: "copy the video ID to the clipboard",
				},
				&cli.StringFlag{
					Name:  "copy",
					Usage: "copy the URL of the `TIER` thumbnail to the clipboard",
				},
				&cli.DurationFlag{
					Name:  "hold",
					Value: defaultClipboardHold,
					Usage: "keep copied text available for up to `DURATION` on platforms that lose it on exit",
				},
			},
			Action: a.get,
		},
		{
			Name:      "download",
			Usage:     "save the thumbnails of a YouTube URL",
			ArgsUsage: "URL",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  "tier",
					Usage: "only save the `TIER` thumbnail (repeatable)",
				},
				&cli.StringFlag{
					Name:  "target",
					Value: ".",
					Usage: "save thumbnails to `DIR`",
				},
			},
			Action: a.download,
		},
		{
			Name:   "recent",
			Usage:  "list recently used URLs",
			Action: a.recent,
			Subcommands: []*cli.Command{
				{
					Name:      "remove",
					Usage:     "remove a URL from the list",
					ArgsUsage: "URL",
					Action:    a.recentRemove,
				},
				{
					Name:   "clear",
					Usage:  "empty the list",
					Action: a.recentClear,
				},
			},
			HideHelpCommand: true,
		},
		{
			Name:      "theme",
			Usage:     "show or change the theme",
			ArgsUsage: "[light|dark|toggle]",
			Action:    a.theme,
		},
	}
}

func urlArg(c *cli.Context) (string, error) {
	u := strings.TrimSpace(c.Args().First())
	if u == "" {
		return "", errMissingURL
	}
	return u, nil
}

func (a *application) id(c *cli.Context) error {
	u, err := urlArg(c)
	if err != nil {
		return err
	}
	id, err := videoid.Extract(u)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, id)
	return nil
}

func (a *application) get(c *cli.Context) error {
	if c.Bool("copy-id") && c.IsSet("copy") {
		return errCopyConflict
	}
	var copyTier generic.Option[yt_thumbnail.Tier]
	if s := c.String("copy"); s != "" {
		tier, err := yt_thumbnail.ParseTier(s)
		if err != nil {
			return err
		}
		copyTier = generic.Some(tier)
	}
	u, err := urlArg(c)
	if err != nil {
		return err
	}
	l, err := a.session.Lookup(a.ctx, u)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintln(w, l.Heading())
	fmt.Fprintf(w, "Image: %s\n", l.Primary.URL)
	for _, t := range l.Thumbnails {
		fmt.Fprintf(w, "  %-14s %s\n", t.Tier, t.URL)
	}
	fmt.Fprintf(w, "Facebook: %s\n", l.Share.Facebook)
	fmt.Fprintf(w, "Twitter:  %s\n", l.Share.Twitter)
	fmt.Fprintf(w, "WhatsApp: %s\n", l.Share.WhatsApp)

	if c.Bool("copy-id") {
		a.copyText(string(l.VideoID), c.Duration("hold"))
	}
	if copyTier.IsSome() {
		a.copyText(a.session.Thumbnails().Thumbnail(l.VideoID, copyTier.Value).URL, c.Duration("hold"))
	}
	return nil
}

// copyText puts text on the clipboard. Failure is only logged, since there may not be a clipboard at all.
//
// On X11 and Wayland the text is served by this process, so it disappears when the process exits. There, copyText
// blocks until another program takes over the clipboard, hold elapses, or the context is cancelled.
func (a *application) copyText(text string, hold time.Duration) {
	logger := zap.S().Named("clipboard")
	if err := clipboard.Init(); err != nil {
		logger.Warnf("clipboard unavailable: %v", err)
		return
	}
	changed := clipboard.Write(clipboard.FmtText, []byte(text))
	if changed == nil {
		logger.Warnf("failed to copy %s", text)
		return
	}
	if !clipboardOwnedByProcess() {
		logger.Infof("Copied %s", text)
		return
	}
	logger.Infof("Copied %s, keeping it available for up to %v (Ctrl-C to stop)", text, hold)
	switch holdClipboard(a.ctx, changed, hold) {
	case holdReplaced:
		logger.Debug("clipboard taken over by another program")
	case holdExpired:
		logger.Infof("Stopped serving clipboard after %v", hold)
	case holdCancelled:
		logger.Debug("clipboard hold cancelled")
	}
}

func clipboardOwnedByProcess() bool {
	switch runtime.GOOS {
	case "darwin", "windows", "android", "ios":
		return false
	default:
		return true
	}
}

type holdOutcome int

const (
	holdReplaced holdOutcome = iota
	holdExpired
	holdCancelled
)

// holdClipboard waits until changed is closed, hold elapses or ctx is done, whichever is first.
func holdClipboard(ctx context.Context, changed <-chan struct{}, hold time.Duration) holdOutcome {
	timer := time.NewTimer(hold)
	defer timer.Stop()
	select {
	case <-changed:
		return holdReplaced
	case <-ctx.Done():
		return holdCancelled
	case <-timer.C:
		return holdExpired
	}
}

func (a *application) download(c *cli.Context) error {
	tiers, err := parseTiers(c.StringSlice("tier"))
	if err != nil {
		return err
	}
	u, err := urlArg(c)
	if err != nil {
		return err
	}
	l, err := a.session.Lookup(a.ctx, u)
	if err != nil {
		return err
	}
	target := c.String("target")
	logger := yt_thumbnail.Logger(a.ctx).Sugar()
	logger.Infof("Downloading %d thumbnails of %s into %s", len(tiers), l.VideoID, target)

	config := a.session.Thumbnails()
	bar := newProgress(c.App.ErrWriter, len(tiers), fmt.Sprintf("downloading %s", l.VideoID))
	results := make([]<-chan generic.Result[string], len(tiers))
	for i, tier := range tiers {
		t := config.Thumbnail(l.VideoID, tier)
		callback := bar.callback(i)
		results[i] = async.RunResult(func() (string, error) {
			download := generic.Unwrap(yt_thumbnail.NewDownloadBuilder().
				WithContext(a.ctx).
				WithProgressCallback(callback).
				WithTargetDir(target).
				Build())
			defer download.Close()
			return download.SaveThumbnail(config, t)
		})
	}

	var result *multierror.Error
	var paths []string
	for i, ch := range results {
		path, err := (<-ch).Parts()
		if err != nil {
			logger.Warnf("%s: %v", tiers[i], err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", tiers[i], err))
			continue
		}
		paths = append(paths, path)
	}
	bar.finish()
	for _, path := range paths {
		fmt.Fprintln(c.App.Writer, path)
	}
	if len(paths) == 0 {
		return result.ErrorOrNil()
	}
	logger.Infof("Saved %d of %d thumbnails", len(paths), len(tiers))
	return nil
}

// parseTiers parses tier names in order, ignoring repeats. No names means every tier.
func parseTiers(names []string) ([]yt_thumbnail.Tier, error) {
	if len(names) == 0 {
		return yt_thumbnail.Tiers, nil
	}
	seen := generic.NewSet[yt_thumbnail.Tier]()
	var tiers []yt_thumbnail.Tier
	for _, name := range names {
		tier, err := yt_thumbnail.ParseTier(name)
		if err != nil {
			return nil, err
		}
		if seen.Add(tier) {
			tiers = append(tiers, tier)
		}
	}
	return tiers, nil
}

func (a *application) recent(c *cli.Context) error {
	urls, err := a.session.Preferences().RecentURLs()
	if err != nil {
		return err
	}
	for i, u := range urls {
		fmt.Fprintf(c.App.Writer, "%d. %s\n", i+1, u)
	}
	return nil
}

func (a *application) recentRemove(c *cli.Context) error {
	u, err := urlArg(c)
	if err != nil {
		return err
	}
	return a.session.RemoveRecentURL(u)
}

func (a *application) recentClear(*cli.Context) error {
	return a.session.ClearRecentURLs()
}

func (a *application) theme(c *cli.Context) error {
	var theme prefs.Theme
	var err error
	switch arg := c.Args().First(); arg {
	case "":
		theme, err = a.session.Preferences().Theme()
	case "toggle":
		theme, err = a.session.ToggleTheme()
	default:
		if theme, err = prefs.ParseTheme(arg); err == nil {
			err = a.session.SetTheme(theme)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, theme)
	return nil
}

// progress combines the progress of several concurrent downloads into one bar.
type progress struct {
	mu         sync.Mutex
	bar        *progressbar.ProgressBar
	downloaded []int
	expected   []int
}

func newProgress(w io.Writer, n int, description string) *progress {
	return &progress{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(w),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(10),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(w, "\n")
			}),
		),
		downloaded: make([]int, n),
		expected:   make([]int, n),
	}
}

func (p *progress) callback(i int) func(int, int) {
	return func(downloaded int, expected int) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.downloaded[i], p.expected[i] = downloaded, expected
		var totalDownloaded, totalExpected int
		for j := range p.downloaded {
			totalDownloaded += p.downloaded[j]
			totalExpected += p.expected[j]
		}
		if totalExpected > 0 && p.bar.GetMax() != totalExpected {
			p.bar.ChangeMax(totalExpected)
		}
		if err := p.bar.Set(totalDownloaded); err != nil {
			zap.S().Debugf("progress: %v", err)
		}
	}
}

func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}
