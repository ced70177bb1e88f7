package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser es el handle explícito sobre el Chrome headless. Es dueño del
// allocator (el proceso se mantiene vivo y se reutiliza entre ticks de
// sondeo); cada fetch abre su propia pestaña y la cierra en todos los caminos
// de salida, para no filtrar recursos del navegador entre ticks.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
}

// Options configura el handle del navegador.
type Options struct {
	// ExecPath apunta al binario de Chrome/Chromium; vacío usa el default.
	ExecPath string
	// PageTimeout acota cada navegación completa (fetch + render).
	PageTimeout time.Duration
}

// New lanza el allocator de Chrome headless. El caller debe llamar Close.
func New(opts Options) *Browser {
	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if opts.ExecPath != "" {
		execOpts = append(execOpts, chromedp.ExecPath(opts.ExecPath))
	}

	timeout := opts.PageTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), execOpts...)

	return &Browser{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		timeout:     timeout,
	}
}

// RenderHTML navega a la URL en una pestaña nueva, espera el selector y
// retorna el OuterHTML del documento renderizado. La pestaña se cancela
// siempre: éxito, timeout o error.
func (b *Browser) RenderHTML(ctx context.Context, url, waitSelector string) (string, error) {
	ctx, cancelTimeout := context.WithTimeout(ctx, b.timeout)
	defer cancelTimeout()

	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()

	// Propagar la cancelación del caller a la pestaña
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-tabCtx.Done():
		}
	}()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.Sleep(2*time.Second), // esperar a que cargue JavaScript
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("error renderizando %s: %w", url, err)
	}

	log.Printf("📄 [BROWSER] HTML renderizado: %d bytes (%s)", len(html), url)
	return html, nil
}

// Close apaga el proceso de Chrome.
func (b *Browser) Close() {
	b.allocCancel()
}
