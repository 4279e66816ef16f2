package screenshotter

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"OpenAIClient/internal/config"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// Screenshotter снимает весь экран в PNG — источник картинок для vision-запросов.
type Screenshotter struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
}

func New(cfg *config.Config, logger *zap.SugaredLogger) *Screenshotter {
	return &Screenshotter{cfg: cfg, logger: logger}
}

// Run запускает периодическую съёмку скриншотов всего экрана.
// Блокирующий метод; обычно запускается в отдельной горутине.
func (s *Screenshotter) Run(ctx context.Context) {
	if s.cfg != nil && !s.cfg.ScreenshotEnabled {
		s.logger.Infow("Screenshotter is disabled by config")
		return
	}
	interval := time.Duration(max(1, s.cfg.ScreenshotIntervalSeconds)) * time.Second
	t := time.NewTicker(interval)
	defer t.Stop()

	s.logger.Infow("Screenshotter started", "interval", interval.String(), "outputDir", s.cfg.ScreenshotDir)
	// Немедленно делаем первый кадр
	if _, err := s.CaptureOnce(); err != nil {
		s.logger.Errorw("Failed to capture screenshot", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("Screenshotter stopped", "reason", ctx.Err())
			return
		case <-t.C:
			if _, err := s.CaptureOnce(); err != nil {
				s.logger.Errorw("Failed to capture screenshot", "error", err)
			}
		}
	}
}

// CaptureOnce делает один снимок всех мониторов, склеивает их в общий холст
// и сохраняет PNG. Возвращает путь сохранённого файла.
func (s *Screenshotter) CaptureOnce() (string, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return "", fmt.Errorf("no active displays detected")
	}

	// Объединённые границы всех мониторов
	union := image.Rect(0, 0, 0, 0)
	for i := range n {
		b := screenshot.GetDisplayBounds(i)
		if i == 0 {
			union = b
			continue
		}
		union = union.Union(b)
	}

	canvas := image.NewRGBA(union)
	for i := range n {
		b := screenshot.GetDisplayBounds(i)
		img, err := screenshot.CaptureRect(b)
		if err != nil {
			s.logger.Errorw("Failed to capture display", "index", i, "error", err)
			continue
		}
		// Копируем в холст со смещением
		dstPoint := image.Pt(b.Min.X-union.Min.X, b.Min.Y-union.Min.Y)
		dstRect := image.Rectangle{Min: dstPoint, Max: dstPoint.Add(b.Size())}
		draw.Draw(canvas, dstRect, img, image.Point{}, draw.Src)
	}

	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir %s: %w", s.cfg.ScreenshotDir, err)
	}
	path := filepath.Join(s.cfg.ScreenshotDir, time.Now().Format("screen_20060102_150405.000")+".png")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, canvas); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	s.logger.Debugw("Screenshot saved", "path", path)
	return path, nil
}
