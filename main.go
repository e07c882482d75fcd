// main.go - vsmile: SPG200/V.Smile console emulator entry point

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		cartPath   = flag.String("cart", "", "path to cartridge ROM image (required)")
		sysPath    = flag.String("bios", "", "path to system ROM image (required)")
		artPath    = flag.String("art-nvram", "", "path to Art Studio NVRAM save file (enables Art Studio cart type)")
		region     = flag.Int("region", 1, "region code (0-15)")
		vtechLogo  = flag.Bool("vtech-logo", true, "show VTech boot logo strap bit")
		pal        = flag.Bool("pal", false, "use PAL video timing instead of NTSC")
		scale      = flag.Int("scale", 2, "integer display upscale factor")
		scriptPath = flag.String("script", "", "optional Lua script with on_frame/on_button hooks")
	)
	flag.Parse()

	if *cartPath == "" || *sysPath == "" {
		fmt.Fprintln(os.Stderr, "usage: vsmile -cart cart.bin -bios bios.bin [-art-nvram save.bin] [-region N] [-pal] [-scale N] [-script hooks.lua]")
		os.Exit(1)
	}

	if err := run(*cartPath, *sysPath, *artPath, *region, *vtechLogo, *pal, *scale, *scriptPath); err != nil {
		fmt.Fprintf(os.Stderr, "vsmile: %v\n", err)
		os.Exit(1)
	}
}

func run(cartPath, sysPath, artPath string, region int, vtechLogo, pal bool, scale int, scriptPath string) error {
	cartRom, err := loadRomWords(cartPath, cartRomWords)
	if err != nil {
		return err
	}
	sysRom, err := loadRomWords(sysPath, sysRomWords)
	if err != nil {
		return err
	}

	ct := cartTypeNormal
	var artWords []uint16
	var nvram *nvramFile
	if artPath != "" {
		ct = cartTypeArtStudio
		nvram, artWords, err = openNvram(artPath)
		if err != nil {
			return err
		}
		defer nvram.Close()
	}

	videoTiming := videoTimingNTSC
	if pal {
		videoTiming = videoTimingPAL
	}

	console := newVsmile(sysRom, cartRom, ct, artWords, uint16(region), vtechLogo, videoTiming)
	console.Reset()

	var script *scriptHost
	if scriptPath != "" {
		script, err = loadScriptHost(scriptPath)
		if err != nil {
			return err
		}
		defer script.Close()
	}

	player, ring, err := newOtoPlayer()
	if err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	player.Start()
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)
	if nvram != nil {
		group.Go(func() error {
			return autosaveNvram(gctx, nvram, console)
		})
	}

	presentErr := runPresentation(console, ring, script, scale, "V.Smile", stop)
	stop()

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if nvram != nil {
		if err := nvram.Flush(console.GetArtNvram()); err != nil {
			return err
		}
	}
	return presentErr
}

// autosaveNvram periodically flushes the Art Studio save buffer to
// disk so progress survives a crash, not just a clean shutdown.
func autosaveNvram(ctx context.Context, nvram *nvramFile, console *vsmile) error {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := nvram.Flush(console.GetArtNvram()); err != nil {
				return err
			}
		}
	}
}
