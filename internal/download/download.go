// Package download records a resolved stream to disk with ffmpeg.
// Uses exec.Command with explicit argument slices and validates
// output paths against directory traversal.
package download

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"zee5/internal/httputil"
	"zee5/internal/media"
)

// Download copies item's stream and subtitle tracks into an mkv under outputDir.
func Download(ctx context.Context, item *media.PlayableItem, outputDir string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, httputil.SanitizeFilename(item.Title)+".mkv")
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, Args(item, outputPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logrus.WithField("path", outputPath).Info("downloading")

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}

// Args builds the ffmpeg argument list. Video and audio are copied; each
// subtitle file becomes its own SRT track tagged with its language.
func Args(item *media.PlayableItem, outputPath string) []string {
	args := []string{"-y", "-i", item.StreamURL}
	for _, sub := range item.SubtitleFiles {
		args = append(args, "-i", sub)
	}

	args = append(args, "-map", "0:v", "-map", "0:a")
	for i := range item.SubtitleFiles {
		args = append(args, "-map", fmt.Sprintf("%d:s", i+1))
	}

	args = append(args, "-c:v", "copy", "-c:a", "copy")
	if len(item.SubtitleFiles) > 0 {
		args = append(args, "-c:s", "srt")
	}
	for i, sub := range item.SubtitleFiles {
		if lang := subtitleLang(sub); lang != "" {
			args = append(args, fmt.Sprintf("-metadata:s:s:%d", i), "language="+lang)
		}
	}

	return append(args,
		"-metadata", "title="+item.Title,
		outputPath,
	)
}

// subtitleLang extracts the language from a "<title>-<lang>.vtt" file name.
func subtitleLang(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}
