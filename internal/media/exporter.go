package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"subsrs/internal/align"
	"subsrs/internal/config"
	"subsrs/internal/fileutil"
	"subsrs/internal/mediacache"
	"subsrs/internal/srt"
)

// lockFileName guards the output directory against concurrent exports that
// would race on media files and the deck table.
const lockFileName = ".subsrs.lock"

// Options describes an export session.
type Options struct {
	VideoPath       string
	ForeignSubs     []srt.Subtitle
	NativeSubs      []srt.Subtitle
	ForeignLanguage string
	Title           string
	OutputDir       string
	Config          *config.Config
	Logger          *slog.Logger
	Cache           *mediacache.Store
	Runner          Runner
}

type request struct {
	kind   string
	period srt.Period
	name   string
}

// Exporter implements export.Exporter against a video file on disk.
type Exporter struct {
	ctx      context.Context
	cfg      *config.Config
	log      *slog.Logger
	run      Runner
	cache    *mediacache.Store
	lock     *flock.Flock
	video    string
	stem     string
	title    string
	lang     string
	outDir   string
	duration float64
	foreign  []srt.Subtitle
	native   []srt.Subtitle
	pending  []request
	seen     map[string]struct{}
	finished bool
}

// New prepares an export session: it validates the source video, locks the
// output directory, and probes the container once. The context bounds every
// external tool invocation made over the session's lifetime. Callers must
// Close the exporter to release the directory lock.
func New(ctx context.Context, opts Options) (*Exporter, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if _, err := os.Stat(opts.VideoPath); err != nil {
		return nil, fmt.Errorf("source video: %w", err)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = opts.Config.Paths.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output directory: %w", err)
	}

	lock := flock.New(filepath.Join(outDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("output directory %s is locked by another export", outDir)
	}

	probe, err := Probe(ctx, opts.Runner, opts.Config.Tools.FFprobe, opts.VideoPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	if !probe.HasVideo() {
		_ = lock.Unlock()
		return nil, fmt.Errorf("source %s has no video stream", opts.VideoPath)
	}
	if !probe.HasAudio() {
		_ = lock.Unlock()
		return nil, fmt.Errorf("source %s has no audio stream", opts.VideoPath)
	}

	stem := fileutil.SanitizeName(fileutil.Stem(opts.VideoPath))
	title := opts.Title
	if title == "" {
		title = fileutil.Stem(opts.VideoPath)
	}

	log := opts.Logger.With(
		slog.String("component", "exporter"),
		slog.String("run_id", uuid.NewString()),
	)
	log.Debug("export session ready",
		slog.String("video", opts.VideoPath),
		slog.Float64("duration_s", probe.DurationSeconds()))

	return &Exporter{
		ctx:      ctx,
		cfg:      opts.Config,
		log:      log,
		run:      opts.Runner,
		cache:    opts.Cache,
		lock:     lock,
		video:    opts.VideoPath,
		stem:     stem,
		title:    title,
		lang:     opts.ForeignLanguage,
		outDir:   outDir,
		duration: probe.DurationSeconds(),
		foreign:  opts.ForeignSubs,
		native:   opts.NativeSubs,
		seen:     make(map[string]struct{}),
	}, nil
}

// Close releases the output directory lock.
func (e *Exporter) Close() error {
	return e.lock.Unlock()
}

// ForeignLanguage returns the language code of the foreign track.
func (e *Exporter) ForeignLanguage() string { return e.lang }

// Title returns the deck source title.
func (e *Exporter) Title() string { return e.title }

// FileStem returns the sanitized stem of the source video file name.
func (e *Exporter) FileStem() string { return e.stem }

// Align merges the foreign and native tracks into aligned pairs.
func (e *Exporter) Align() []align.Pair {
	return align.Tracks(e.foreign, e.native)
}

// ScheduleImageExport registers a still-frame extraction at the given
// instant and returns its stable file name. Duplicate requests collapse.
func (e *Exporter) ScheduleImageExport(at float64) string {
	name := fmt.Sprintf("%s_%s.jpg", e.stem, timestampName(at))
	e.schedule(request{
		kind:   mediacache.KindImage,
		period: srt.Period{Start: at, End: at},
		name:   name,
	})
	return name
}

// ScheduleAudioExport registers an audio-clip extraction over the period and
// returns its stable file name.
func (e *Exporter) ScheduleAudioExport(lang string, period srt.Period) string {
	name := fmt.Sprintf("%s_%s_%s", e.stem, timestampName(period.Start), timestampName(period.End))
	if lang != "" {
		name += "." + fileutil.SanitizeName(lang)
	}
	name += ".mp3"
	e.schedule(request{kind: mediacache.KindAudio, period: period, name: name})
	return name
}

func (e *Exporter) schedule(req request) {
	if _, ok := e.seen[req.name]; ok {
		return
	}
	e.seen[req.name] = struct{}{}
	e.pending = append(e.pending, req)
}

// ExportDataFile persists the deck table under the output directory. The
// write is atomic so an aborted export never leaves a truncated deck behind.
func (e *Exporter) ExportDataFile(name string, data []byte) error {
	target := filepath.Join(e.outDir, fileutil.SanitizeName(name))
	if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
		return fmt.Errorf("export data file %s: %w", name, err)
	}
	e.log.Info("wrote deck file",
		slog.String("path", target),
		slog.Int("bytes", len(data)))
	return nil
}

// FinishExports runs every scheduled extraction. Clips recorded in the media
// cache and still present on disk are skipped. Must be called exactly once,
// after all scheduling; the first failure aborts the run.
func (e *Exporter) FinishExports() error {
	if e.finished {
		return errors.New("finish exports called twice")
	}
	e.finished = true

	extracted, skipped := 0, 0
	for _, req := range e.pending {
		target := filepath.Join(e.outDir, req.name)
		if e.cachedClip(req) && fileutil.FileExists(target) {
			skipped++
			continue
		}

		var err error
		switch req.kind {
		case mediacache.KindImage:
			err = e.extractImage(req.period.Start, target)
		case mediacache.KindAudio:
			err = e.extractAudio(req.period, target)
		default:
			err = fmt.Errorf("unknown clip kind %q", req.kind)
		}
		if err != nil {
			return fmt.Errorf("extract %s: %w", req.name, err)
		}
		e.recordClip(req)
		extracted++
		e.log.Debug("extracted clip",
			slog.String("kind", req.kind),
			slog.String("path", target))
	}

	e.log.Info("media extraction complete",
		slog.Int("extracted", extracted),
		slog.Int("skipped", skipped))
	return nil
}

func (e *Exporter) cachedClip(req request) bool {
	if e.cache == nil {
		return false
	}
	path, err := e.cache.Lookup(e.ctx, e.video, req.kind, req.period.Start, req.period.End)
	if err != nil {
		e.log.Warn("media cache lookup failed", slog.Any("error", err))
		return false
	}
	return path == req.name
}

func (e *Exporter) recordClip(req request) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Record(e.ctx, e.video, req.kind, req.period.Start, req.period.End, req.name); err != nil {
		e.log.Warn("media cache record failed", slog.Any("error", err))
	}
}

func (e *Exporter) extractImage(at float64, target string) error {
	at = e.clamp(at)
	_, err := e.run.Run(e.ctx, e.cfg.Tools.FFmpeg,
		"-y", "-loglevel", "error",
		"-ss", formatSeconds(at),
		"-i", e.video,
		"-frames:v", "1",
		"-vf", "scale="+strconv.Itoa(e.cfg.Export.ImageWidth)+":-2",
		"-q:v", strconv.Itoa(e.cfg.Export.ImageQuality),
		target)
	return err
}

func (e *Exporter) extractAudio(period srt.Period, target string) error {
	start := e.clamp(period.Start)
	end := e.clamp(period.End)
	if end <= start {
		return fmt.Errorf("empty audio period [%f, %f)", period.Start, period.End)
	}
	_, err := e.run.Run(e.ctx, e.cfg.Tools.FFmpeg,
		"-y", "-loglevel", "error",
		"-ss", formatSeconds(start),
		"-i", e.video,
		"-t", formatSeconds(end-start),
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", e.cfg.Export.AudioBitrate,
		target)
	return err
}

// clamp bounds an instant to the playable range of the source. Grown
// subtitle periods routinely poke past either end of the video.
func (e *Exporter) clamp(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	if e.duration > 0 && seconds > e.duration {
		return e.duration
	}
	return seconds
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

// timestampName renders an instant as an underscore-separated token safe for
// file names, e.g. 153.5 seconds becomes "00_02_33_500".
func timestampName(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(seconds * 1000)
	return fmt.Sprintf("%02d_%02d_%02d_%03d",
		millis/3600000,
		millis%3600000/60000,
		millis%60000/1000,
		millis%1000)
}
