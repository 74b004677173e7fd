package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subsrs/internal/config"
	"subsrs/internal/mediacache"
	"subsrs/internal/srt"
)

const probeJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "channels": 2, "sample_rate": "48000", "tags": {"language": "jpn"}}
  ],
  "format": {"duration": "120.0"}
}`

// stubRunner answers ffprobe with canned JSON and records ffmpeg
// invocations, creating the output file the way the real tool would.
type stubRunner struct {
	probeJSON  string
	ffmpegErr  error
	ffmpegRuns [][]string
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if name == "ffprobe" {
		return []byte(s.probeJSON), nil
	}
	s.ffmpegRuns = append(s.ffmpegRuns, append([]string{name}, args...))
	if s.ffmpegErr != nil {
		return nil, s.ffmpegErr
	}
	if len(args) > 0 {
		target := args[len(args)-1]
		if err := os.WriteFile(target, []byte("clip"), 0o644); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestExporter(t *testing.T, run *stubRunner, cache *mediacache.Store, outDir string) *Exporter {
	t.Helper()
	video := writeVideo(t, t.TempDir(), "My Episode 01.mkv")
	exp, err := New(context.Background(), Options{
		VideoPath:       video,
		ForeignLanguage: "ja",
		OutputDir:       outDir,
		Config:          config.Default(),
		Cache:           cache,
		Runner:          run,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = exp.Close() })
	return exp
}

func TestNewRejectsMissingStreams(t *testing.T) {
	video := writeVideo(t, t.TempDir(), "audio_only.mkv")
	run := &stubRunner{probeJSON: `{"streams":[{"index":0,"codec_type":"audio"}],"format":{}}`}

	_, err := New(context.Background(), Options{
		VideoPath: video,
		OutputDir: t.TempDir(),
		Config:    config.Default(),
		Runner:    run,
	})
	if err == nil || !strings.Contains(err.Error(), "no video stream") {
		t.Fatalf("expected video stream error, got %v", err)
	}
}

func TestFileStemIsSanitized(t *testing.T) {
	run := &stubRunner{probeJSON: probeJSON}
	exp := newTestExporter(t, run, nil, t.TempDir())
	if exp.FileStem() != "My_Episode_01" {
		t.Fatalf("stem = %q", exp.FileStem())
	}
	if exp.Title() != "My Episode 01" {
		t.Fatalf("title = %q", exp.Title())
	}
}

func TestScheduleNamesAreStableAndDeduped(t *testing.T) {
	run := &stubRunner{probeJSON: probeJSON}
	exp := newTestExporter(t, run, nil, t.TempDir())

	name := exp.ScheduleImageExport(153.5)
	if name != "My_Episode_01_00_02_33_500.jpg" {
		t.Fatalf("image name = %q", name)
	}
	if again := exp.ScheduleImageExport(153.5); again != name {
		t.Fatalf("duplicate schedule changed name: %q vs %q", again, name)
	}

	audio := exp.ScheduleAudioExport("ja", srt.Period{Start: 10, End: 15})
	if audio != "My_Episode_01_00_00_10_000_00_00_15_000.ja.mp3" {
		t.Fatalf("audio name = %q", audio)
	}

	if err := exp.FinishExports(); err != nil {
		t.Fatalf("FinishExports: %v", err)
	}
	// One image (deduped) plus one audio clip.
	if len(run.ffmpegRuns) != 2 {
		t.Fatalf("expected 2 ffmpeg runs, got %d", len(run.ffmpegRuns))
	}
}

func TestFinishExportsClampsToSource(t *testing.T) {
	run := &stubRunner{probeJSON: probeJSON}
	exp := newTestExporter(t, run, nil, t.TempDir())

	exp.ScheduleAudioExport("ja", srt.Period{Start: -2, End: 5})
	if err := exp.FinishExports(); err != nil {
		t.Fatalf("FinishExports: %v", err)
	}

	args := strings.Join(run.ffmpegRuns[0], " ")
	if !strings.Contains(args, "-ss 0.000") {
		t.Fatalf("start not clamped: %s", args)
	}
	if !strings.Contains(args, "-t 5.000") {
		t.Fatalf("clip length wrong: %s", args)
	}
}

func TestFinishExportsTwiceFails(t *testing.T) {
	run := &stubRunner{probeJSON: probeJSON}
	exp := newTestExporter(t, run, nil, t.TempDir())

	if err := exp.FinishExports(); err != nil {
		t.Fatalf("first FinishExports: %v", err)
	}
	if err := exp.FinishExports(); err == nil {
		t.Fatal("second FinishExports must fail")
	}
}

func TestFinishExportsPropagatesToolFailure(t *testing.T) {
	run := &stubRunner{probeJSON: probeJSON, ffmpegErr: errors.New("boom")}
	exp := newTestExporter(t, run, nil, t.TempDir())

	exp.ScheduleImageExport(1)
	err := exp.FinishExports()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected tool failure, got %v", err)
	}
}

func TestExportDataFile(t *testing.T) {
	run := &stubRunner{probeJSON: probeJSON}
	outDir := t.TempDir()
	exp := newTestExporter(t, run, nil, outDir)

	if err := exp.ExportDataFile("cards.csv", []byte("header\nrow\n")); err != nil {
		t.Fatalf("ExportDataFile: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "cards.csv"))
	if err != nil {
		t.Fatalf("read deck: %v", err)
	}
	if string(data) != "header\nrow\n" {
		t.Fatalf("deck content = %q", data)
	}
}

func TestOutputDirectoryLock(t *testing.T) {
	run := &stubRunner{probeJSON: probeJSON}
	outDir := t.TempDir()
	_ = newTestExporter(t, run, nil, outDir)

	video := writeVideo(t, t.TempDir(), "other.mkv")
	_, err := New(context.Background(), Options{
		VideoPath: video,
		OutputDir: outDir,
		Config:    config.Default(),
		Runner:    &stubRunner{probeJSON: probeJSON},
	})
	if err == nil || !strings.Contains(err.Error(), "locked") {
		t.Fatalf("expected lock conflict, got %v", err)
	}
}

func TestCachedClipsAreSkipped(t *testing.T) {
	outDir := t.TempDir()
	video := writeVideo(t, t.TempDir(), "My Episode 01.mkv")
	cache, err := mediacache.Open(context.Background(), filepath.Join(t.TempDir(), "media.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	open := func(run *stubRunner) *Exporter {
		exp, err := New(context.Background(), Options{
			VideoPath: video,
			OutputDir: outDir,
			Config:    config.Default(),
			Cache:     cache,
			Runner:    run,
		})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return exp
	}

	first := &stubRunner{probeJSON: probeJSON}
	exp := open(first)
	exp.ScheduleImageExport(30)
	if err := exp.FinishExports(); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if len(first.ffmpegRuns) != 1 {
		t.Fatalf("expected 1 extraction, got %d", len(first.ffmpegRuns))
	}
	if err := exp.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := &stubRunner{probeJSON: probeJSON}
	exp2 := open(second)
	defer exp2.Close()
	exp2.ScheduleImageExport(30)
	if err := exp2.FinishExports(); err != nil {
		t.Fatalf("second export: %v", err)
	}
	if len(second.ffmpegRuns) != 0 {
		t.Fatalf("cached clip re-extracted: %d runs", len(second.ffmpegRuns))
	}
}
