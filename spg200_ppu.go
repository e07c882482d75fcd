// spg200_ppu.go - Scanline-driven tile/sprite picture processing unit

/*
spg200_ppu.go - PPU

Drives one scanline per `4 * (429 or 432)` PPU-clock cycles (NTSC vs
PAL), for 262 or 312 lines a frame, of which the first 240 are visible.
Each visible line composites two tile/bitmap background layers and up
to 256 sprites across four depth layers, non-blended sprites first and
blended sprites last within each layer, then converts any
still-transparent pixel to opaque black.

Sprite memory is addressed as 256 four-word records (ch, xpos, ypos,
attribute) and doubles as the destination of its own blocking DMA
engine — ppuCalcLineSegmentAddr and drawTileLine are shared by both
background and sprite rendering, operating on a packed pixel stream
whose width in bits depends on the layer's color mode (2/4/6/8/16 bits
per pixel).

The sprite DMA's target wrap (0x3ff, i.e. sprite memory's 1024-word
span) is deliberately a different mask from the CPU-facing dma block's
0x3fff target wrap in spg200_dma.go: two unrelated engines that happen
to share a "wrapping word copy" shape.
*/

package main

const (
	videoTimingNTSC = 0
	videoTimingPAL  = 1
)

type ppuColor uint16

func (c ppuColor) transparent() bool { return c&(1<<15) != 0 }
func (c ppuColor) r() int            { return int(c>>10) & 0x1f }
func (c ppuColor) g() int            { return int(c>>5) & 0x1f }
func (c ppuColor) b() int            { return int(c) & 0x1f }

func makeColor(transparent bool, r, g, b int) ppuColor {
	var v uint16
	if transparent {
		v |= 1 << 15
	}
	v |= uint16(r&0x1f) << 10
	v |= uint16(g&0x1f) << 5
	v |= uint16(b & 0x1f)
	return ppuColor(v)
}

func (c ppuColor) withRGB(r, g, b int) ppuColor {
	return makeColor(c.transparent(), r, g, b)
}

const (
	ppuIrqWriteMask = 0x0007

	bgAttrWriteMask     = 0x3fff
	bgControlWriteMask  = 0x01ff
	spriteAttrWriteMask = 0x7fff
)

type ppuBgAttribute struct{ raw uint16 }

func (a ppuBgAttribute) depth() int     { return int(a.raw>>12) & 0x3 }
func (a ppuBgAttribute) palette() int   { return int(a.raw>>8) & 0xf }
func (a ppuBgAttribute) vsize() int     { return int(a.raw>>6) & 0x3 }
func (a ppuBgAttribute) hsize() int     { return int(a.raw>>4) & 0x3 }
func (a ppuBgAttribute) vflip() bool    { return a.raw&(1<<3) != 0 }
func (a ppuBgAttribute) hflip() bool    { return a.raw&(1<<2) != 0 }
func (a ppuBgAttribute) colorMode() int { return int(a.raw) & 0x3 }

type ppuTileAttribute struct{ raw uint16 }

func (a ppuTileAttribute) blend() bool  { return a.raw&(1<<6) != 0 }
func (a ppuTileAttribute) vflip() bool  { return a.raw&(1<<5) != 0 }
func (a ppuTileAttribute) hflip() bool  { return a.raw&(1<<4) != 0 }
func (a ppuTileAttribute) palette() int { return int(a.raw) & 0xf }

type ppuBgControl struct{ raw uint16 }

func (c ppuBgControl) blend() bool        { return c.raw&(1<<8) != 0 }
func (c ppuBgControl) hicolorMode() bool  { return c.raw&(1<<7) != 0 }
func (c ppuBgControl) vcompress() bool    { return c.raw&(1<<6) != 0 }
func (c ppuBgControl) hcompress() bool    { return c.raw&(1<<5) != 0 }
func (c ppuBgControl) hmovement() bool    { return c.raw&(1<<4) != 0 }
func (c ppuBgControl) enabled() bool      { return c.raw&(1<<3) != 0 }
func (c ppuBgControl) wallpaperMode() bool { return c.raw&(1<<2) != 0 }
func (c ppuBgControl) registerMode() bool { return c.raw&(1<<1) != 0 }
func (c ppuBgControl) bitmapMode() bool   { return c.raw&1 != 0 }

type ppuSpriteAttribute struct{ raw uint16 }

func (a ppuSpriteAttribute) blend() bool    { return a.raw&(1<<14) != 0 }
func (a ppuSpriteAttribute) depth() int     { return int(a.raw>>12) & 0x3 }
func (a ppuSpriteAttribute) palette() int   { return int(a.raw>>8) & 0xf }
func (a ppuSpriteAttribute) vsize() int     { return int(a.raw>>6) & 0x3 }
func (a ppuSpriteAttribute) hsize() int     { return int(a.raw>>4) & 0x3 }
func (a ppuSpriteAttribute) vflip() bool    { return a.raw&(1<<3) != 0 }
func (a ppuSpriteAttribute) hflip() bool    { return a.raw&(1<<2) != 0 }
func (a ppuSpriteAttribute) colorMode() int { return int(a.raw) & 0x3 }

type ppuBgData struct {
	xscroll        uint16
	yscroll        uint16
	attr           ppuBgAttribute
	ctrl           ppuBgControl
	tileMapPtr     uint16
	attributeMapPtr uint16
	segmentPtr     uint16
}

type ppuSpriteData struct {
	ch   uint16
	xpos uint16
	ypos uint16
	attr ppuSpriteAttribute
}

type ppuViewSettings struct {
	showSpritesInLayer [4]bool
	showBg             [2]bool
	showSprites        bool
}

func defaultPpuViewSettings() ppuViewSettings {
	return ppuViewSettings{
		showSpritesInLayer: [4]bool{true, true, true, true},
		showBg:             [2]bool{true, true},
		showSprites:        true,
	}
}

type ppu struct {
	bus busInterface
	irq *irqAggregator

	videoTiming int

	framebuffer [240][320]ppuColor
	curScanline int
	clock       simpleClock
	frameCount  int64

	view ppuViewSettings

	irqCtrl, irqStatus uint16
	irqVpos, irqHpos   uint16

	bgData             [2]ppuBgData
	spriteData         [256]ppuSpriteData
	spriteSegmentPtr   uint16
	stnLcdControl      uint8
	blendLevel         uint8
	fadeLevel          uint8
	vCompressAmount    uint16
	vCompressOffset    uint16
	lineScroll         [256]uint16
	lineCompress       [256]uint16
	paletteMemory      [256]uint16

	spriteEnable     bool
	spriteDmaSource  uint16
	spriteDmaTarget  uint16
	spriteDmaLength  uint16
}

func newPpu(videoTiming int, bus busInterface, irq *irqAggregator) *ppu {
	period := 429
	if videoTiming == videoTimingPAL {
		period = 432
	}
	p := &ppu{
		bus:         bus,
		irq:         irq,
		videoTiming: videoTiming,
		clock:       newSimpleClockAB(period*4, 1),
		view:        defaultPpuViewSettings(),
	}
	return p
}

func (p *ppu) Reset() {
	p.curScanline = 0
	p.clock.Reset()
	p.frameCount = 0
	for y := range p.framebuffer {
		for x := range p.framebuffer[y] {
			p.framebuffer[y][x] = 0
		}
	}

	p.bgData = [2]ppuBgData{}
	p.spriteData = [256]ppuSpriteData{}
	p.spriteSegmentPtr = 0
	p.blendLevel = 0
	p.vCompressAmount = 0x20
	p.vCompressOffset = 0
	p.fadeLevel = 0
	p.lineScroll = [256]uint16{}
	p.lineCompress = [256]uint16{}
	p.paletteMemory = [256]uint16{}
	p.spriteEnable = false
	p.spriteDmaSource = 0
	p.spriteDmaTarget = 0
	p.spriteDmaLength = 0
	p.stnLcdControl = 0
	p.irqVpos = 0x1ff
	p.irqHpos = 0x1ff

	p.irqCtrl = 0
	p.irqStatus = 0
	p.updateIrq()
}

func (p *ppu) SetViewSettings(v ppuViewSettings) { p.view = v }

// RunCycles advances the scanline clock and returns true on the
// cycle that completes a visible frame.
func (p *ppu) RunCycles(cycles int) bool {
	if !p.clock.Tick(cycles) {
		return false
	}

	scanlines := 262
	if p.videoTiming == videoTimingPAL {
		scanlines = 312
	}
	frameFinished := false

	if uint16(p.curScanline) == p.irqVpos && p.irqCtrl&(1<<1) != 0 {
		p.irqStatus |= 1 << 1
		p.updateIrq()
	}

	switch {
	case p.curScanline < 240:
		p.drawLine(p.curScanline)
		if p.curScanline == 239 {
			if p.irqCtrl&1 != 0 {
				p.irqStatus |= 1
				p.updateIrq()
			}
			p.frameCount++
			frameFinished = true
		}
		p.curScanline++
	case p.curScanline >= scanlines-1:
		p.irqStatus &^= 1
		p.updateIrq()
		p.curScanline = 0
	default:
		p.curScanline++
	}

	return frameFinished
}

func (p *ppu) GetBgXScroll(bg int) uint16 { return p.bgData[bg].xscroll }
func (p *ppu) SetBgXScroll(bg int, v uint16) { p.bgData[bg].xscroll = v & 0x1ff }
func (p *ppu) GetBgYScroll(bg int) uint16 { return p.bgData[bg].yscroll }
func (p *ppu) SetBgYScroll(bg int, v uint16) { p.bgData[bg].yscroll = v & 0xff }
func (p *ppu) GetBgAttribute(bg int) uint16 { return p.bgData[bg].attr.raw }
func (p *ppu) SetBgAttribute(bg int, v uint16) { p.bgData[bg].attr.raw = v & bgAttrWriteMask }
func (p *ppu) GetBgControl(bg int) uint16 { return p.bgData[bg].ctrl.raw }
func (p *ppu) SetBgControl(bg int, v uint16) { p.bgData[bg].ctrl.raw = v & bgControlWriteMask }
func (p *ppu) GetBgTileMapPtr(bg int) uint16 { return p.bgData[bg].tileMapPtr }
func (p *ppu) SetBgTileMapPtr(bg int, v uint16) { p.bgData[bg].tileMapPtr = v & 0x3fff }
func (p *ppu) GetBgAttributeMapPtr(bg int) uint16 { return p.bgData[bg].attributeMapPtr }
func (p *ppu) SetBgAttributeMapPtr(bg int, v uint16) {
	p.bgData[bg].attributeMapPtr = v & 0x3fff
}
func (p *ppu) GetVerticalCompressAmount() uint16 { return p.vCompressAmount }
func (p *ppu) SetVerticalCompressAmount(v uint16) { p.vCompressAmount = v & 0x1ff }
func (p *ppu) GetVerticalCompressOffset() uint16 { return p.vCompressOffset }
func (p *ppu) SetVerticalCompressOffset(v uint16) { p.vCompressOffset = v & 0x1fff }
func (p *ppu) GetBgSegmentPtr(bg int) uint16 { return p.bgData[bg].segmentPtr }
func (p *ppu) SetBgSegmentPtr(bg int, v uint16) { p.bgData[bg].segmentPtr = v }
func (p *ppu) GetSpriteSegmentPtr() uint16 { return p.spriteSegmentPtr }
func (p *ppu) SetSpriteSegmentPtr(v uint16) { p.spriteSegmentPtr = v }
func (p *ppu) GetBlendLevel() uint16 { return uint16(p.blendLevel) }
func (p *ppu) SetBlendLevel(v uint16) { p.blendLevel = uint8(v) & 0x03 }
func (p *ppu) GetFadeLevel() uint16 { return uint16(p.fadeLevel) }
func (p *ppu) SetFadeLevel(v uint16) { p.fadeLevel = uint8(v) }

func (p *ppu) GetSpriteDmaSource() uint16 { return p.spriteDmaSource }
func (p *ppu) SetSpriteDmaSource(v uint16) { p.spriteDmaSource = v & 0x3fff }
func (p *ppu) GetSpriteDmaTarget() uint16 { return p.spriteDmaTarget }
func (p *ppu) SetSpriteDmaTarget(v uint16) { p.spriteDmaTarget = v & 0x3ff }
func (p *ppu) GetSpriteDmaLength() uint16 { return p.spriteDmaLength }

func (p *ppu) StartSpriteDma(length uint16) {
	p.spriteDmaLength = length

	for p.spriteDmaLength != 0 {
		word := p.bus.ReadWord(uint32(p.spriteDmaSource))
		p.spriteDmaSource++
		p.WriteSpriteMemory(p.spriteDmaTarget, word)
		p.spriteDmaTarget++
		p.spriteDmaTarget &= 0x3ff
		p.spriteDmaLength--
	}

	if p.irqCtrl&(1<<2) != 0 {
		p.irqStatus |= 1 << 2
		p.updateIrq()
	}
}

func (p *ppu) GetStnLcdControl() uint16 { return uint16(p.stnLcdControl) }
func (p *ppu) SetStnLcdControl(v uint16) { p.stnLcdControl = uint8(v) & 0x3f }

func (p *ppu) GetLineScroll(offset uint8) uint16 { return p.lineScroll[offset] }
func (p *ppu) SetLineScroll(offset uint8, v uint16) { p.lineScroll[offset] = v & 0x1ff }
func (p *ppu) GetLineCompress(offset uint8) uint16 { return p.lineCompress[offset] }
func (p *ppu) SetLineCompress(offset uint8, v uint16) { p.lineCompress[offset] = v }
func (p *ppu) GetPaletteColor(offset uint8) uint16 { return p.paletteMemory[offset] }
func (p *ppu) SetPaletteColor(offset uint8, v uint16) { p.paletteMemory[offset] = v }

func (p *ppu) ReadSpriteMemory(offset uint16) uint16 {
	index := (offset & 0x3ff) >> 2
	switch offset & 3 {
	case 0:
		return p.spriteData[index].ch
	case 1:
		return p.spriteData[index].xpos
	case 2:
		return p.spriteData[index].ypos
	case 3:
		return p.spriteData[index].attr.raw
	}
	return 0
}

func (p *ppu) WriteSpriteMemory(offset, value uint16) {
	index := (offset & 0x3ff) >> 2
	switch offset & 3 {
	case 0:
		p.spriteData[index].ch = value
	case 1:
		p.spriteData[index].xpos = value & 0x1ff
	case 2:
		p.spriteData[index].ypos = value & 0x1ff
	case 3:
		p.spriteData[index].attr.raw = value & spriteAttrWriteMask
	}
}

func (p *ppu) GetSpriteControl() uint16 {
	if p.spriteEnable {
		return 1
	}
	return 0
}
func (p *ppu) SetSpriteControl(v uint16) { p.spriteEnable = v&1 != 0 }

func (p *ppu) GetIrqControl() uint16 { return p.irqCtrl }
func (p *ppu) SetIrqControl(v uint16) {
	p.irqCtrl = v & ppuIrqWriteMask
	p.updateIrq()
}
func (p *ppu) GetIrqStatus() uint16 { return p.irqStatus }
func (p *ppu) ClearIrqStatus(v uint16) {
	p.irqStatus &^= v & ppuIrqWriteMask
	p.updateIrq()
}
func (p *ppu) GetIrqVpos() uint16 { return p.irqVpos }
func (p *ppu) SetIrqVpos(v uint16) { p.irqVpos = v & 0x1ff }
func (p *ppu) GetIrqHpos() uint16 { return p.irqHpos }
func (p *ppu) SetIrqHpos(v uint16) { p.irqHpos = v & 0x1ff }

func (p *ppu) GetLineCounter() uint16 { return uint16(p.curScanline) }
func (p *ppu) GetFrameCounter() int64 { return p.frameCount }

// GetFramebuffer returns the current frame as packed RGB555 words,
// row-major, 320x240.
func (p *ppu) GetFramebuffer() []uint16 {
	out := make([]uint16, 0, 320*240)
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			out = append(out, uint16(p.framebuffer[y][x]))
		}
	}
	return out
}

func (p *ppu) updateIrq() {
	active := p.irqCtrl & p.irqStatus
	value := active&(1<<2) != 0 || active&(1<<1) != 0 || active&1 != 0
	p.irq.SetPpuIrq(value)
}

func ppuCalcLineSegmentAddr(segmentPtr uint16, ch, tileY, tileWidth, tileHeight, bitsPerPixel int) uint32 {
	return (uint32(segmentPtr) << 6) + uint32((ch*tileHeight+tileY)*tileWidth*bitsPerPixel/16)
}

func ppuBlendInterpolate(oldValue, newValue, blendLevel int) int {
	return (oldValue*(4-(blendLevel+1)))/4 + (newValue*(blendLevel+1))/4
}

func ppuDivideRoundUp(dividend, divisor int) int {
	extra := 0
	if dividend%divisor != 0 {
		extra = 1
	}
	return dividend/divisor + extra
}

func (p *ppu) drawLine(scanline int) {
	for x := 0; x < 320; x++ {
		p.framebuffer[scanline][x] = makeColor(true, 0, 0, 0)
	}

	for layer := 0; layer < 4; layer++ {
		for bg := 0; bg < 2; bg++ {
			if !p.view.showBg[bg] {
				continue
			}
			if p.bgData[bg].ctrl.enabled() && p.bgData[bg].attr.depth() == layer {
				p.drawBgScanline(bg, scanline)
			}
		}

		if p.spriteEnable && p.view.showSprites && p.view.showSpritesInLayer[layer] {
			for i := 0; i < 256; i++ {
				s := &p.spriteData[i]
				if s.ch != 0 && !s.attr.blend() && s.attr.depth() == layer {
					p.drawSpriteScanline(i, scanline)
				}
			}
			for i := 0; i < 256; i++ {
				s := &p.spriteData[i]
				if s.ch != 0 && s.attr.blend() && s.attr.depth() == layer {
					p.drawSpriteScanline(i, scanline)
				}
			}
		}
	}

	for x := 0; x < 320; x++ {
		if p.framebuffer[scanline][x].transparent() {
			p.framebuffer[scanline][x] = makeColor(false, 0, 0, 0)
		}
	}
}

func (p *ppu) drawBgScanline(bgIndex, screenY int) {
	bg := &p.bgData[bgIndex]

	virtualY := screenY
	if bg.ctrl.vcompress() {
		offset := int(sext16(uint32(p.vCompressOffset), 13)) + 128 - 128*int(p.vCompressAmount)/0x20
		virtualY = screenY*int(p.vCompressAmount)/0x20 + offset
	}

	if virtualY < 0 || virtualY >= 240 {
		return
	}

	tilemapY := (virtualY + int(bg.yscroll)) & 0xff
	scrollX := int(bg.xscroll)
	if bg.ctrl.hmovement() {
		scrollX += int(p.lineScroll[tilemapY])
	}
	scrollX &= 0x1ff

	if bg.ctrl.bitmapMode() {
		addrLo := p.bus.ReadWord(uint32(bg.tileMapPtr) + uint32(tilemapY))
		shift := 0
		if tilemapY&1 != 0 {
			shift = 8
		}
		addrHi := p.bus.ReadWord(uint32(bg.attributeMapPtr)+uint32(tilemapY/2)) >> uint(shift)
		addr := uint32(addrLo) | (uint32(addrHi) << 16)
		bitsPerPixel := (bg.attr.colorMode() + 1) * 2
		if bg.ctrl.hicolorMode() {
			bitsPerPixel = 16
		}
		for screenX := -scrollX; screenX < 320; screenX += 512 {
			p.drawTileLine(screenY, screenX, addr, 512, bg.attr.palette(), false, bitsPerPixel, bg.ctrl.blend())
		}
		return
	}

	tileWidth := 8 << bg.attr.hsize()
	tileHeight := 8 << bg.attr.vsize()
	tilemapYtile := tilemapY / tileHeight
	tilesPerRow := 512 >> uint(bg.attr.hsize()+3)

	for screenX := -(scrollX % tileWidth); screenX < 320; screenX += tileWidth {
		tilemapX := (screenX + scrollX) & 0x1ff
		tilemapXtile := tilemapX / tileWidth

		tilemapTilepos := 0
		if !bg.ctrl.wallpaperMode() {
			tilemapTilepos = tilesPerRow*tilemapYtile + tilemapXtile
		}

		numAddr := uint32(bg.tileMapPtr) + uint32(tilemapTilepos)
		ch := p.bus.ReadWord(numAddr)
		if ch == 0 {
			continue
		}

		palette := bg.attr.palette()
		vflip := bg.attr.vflip()
		hflip := bg.attr.hflip()
		blend := bg.ctrl.blend()

		if !bg.ctrl.registerMode() {
			attrAddr := uint32(bg.attributeMapPtr) + uint32(tilemapTilepos>>1)
			attrWord := p.bus.ReadWord(attrAddr)
			shift := 0
			if tilemapTilepos&1 != 0 {
				shift = 8
			}
			attr := ppuTileAttribute{raw: attrWord >> uint(shift)}
			palette = attr.palette()
			vflip = attr.vflip()
			hflip = attr.hflip()
			blend = attr.blend()
		}

		tileY := tilemapY % tileHeight
		if vflip {
			tileY = tileHeight - (tilemapY % tileHeight) - 1
		}
		bitsPerPixel := (bg.attr.colorMode() + 1) * 2

		addr := ppuCalcLineSegmentAddr(bg.segmentPtr, int(ch), tileY, tileWidth, tileHeight, bitsPerPixel)
		p.drawTileLine(screenY, screenX, addr, tileWidth, palette, hflip, bitsPerPixel, blend)
	}
}

func (p *ppu) drawSpriteScanline(sprite, screenY int) {
	s := &p.spriteData[sprite]
	tileWidth := 8 << s.attr.hsize()
	tileHeight := 8 << s.attr.vsize()
	xpos := (160 + int(sext16(uint32(s.xpos), 9))) - tileWidth/2
	ypos := (128 - int(sext16(uint32(s.ypos), 9))) - tileHeight/2
	bitsPerPixel := (s.attr.colorMode() + 1) * 2

	tileY := screenY - ypos
	if s.attr.vflip() {
		tileY = (tileHeight - 1) - (screenY - ypos)
	}

	if tileY < 0 || tileY >= tileHeight {
		return
	}

	addr := ppuCalcLineSegmentAddr(p.spriteSegmentPtr, int(s.ch), tileY, tileWidth, tileHeight, bitsPerPixel)
	p.drawTileLine(screenY, xpos, addr, tileWidth, s.attr.palette(), s.attr.hflip(), bitsPerPixel, s.attr.blend())
}

func (p *ppu) drawTileLine(screenY, screenXStart int, lineAddr uint32, tileWidth, palette int, hflip bool, bitsPerPixel int, blend bool) {
	pixbufShift := -bitsPerPixel
	var pixbuf uint32
	addr := lineAddr
	if hflip {
		addr += uint32(tileWidth*bitsPerPixel/16 - 1)
	}

	leftOffscreen := 0
	if screenXStart < 0 {
		leftOffscreen = -screenXStart
	}
	skippedPixels := 0
	if leftOffscreen > 0 {
		skippedWords := (leftOffscreen * bitsPerPixel) / 16
		if skippedWords != 0 {
			if hflip {
				addr -= uint32(skippedWords)
			} else {
				addr += uint32(skippedWords)
			}
			skippedPixels = ppuDivideRoundUp(skippedWords*16, bitsPerPixel)
			pixbufShift -= (skippedPixels * bitsPerPixel) % 16
		}
	}

	for screenX := screenXStart + skippedPixels; screenX < screenXStart+tileWidth && screenX < 320; screenX++ {
		if pixbufShift < 0 {
			val := p.bus.ReadWord(addr)
			if hflip {
				addr--
			} else {
				addr++
			}
			if bitsPerPixel != 16 {
				val = (val >> 8) | (val << 8)
			}
			if hflip {
				pixbuf = (uint32(val) << 16) | (pixbuf >> 16)
			} else {
				pixbuf = (pixbuf << 16) | uint32(val)
			}
			pixbufShift += 16
		}

		pixbufShiftFlip := pixbufShift
		if hflip {
			pixbufShiftFlip = ((16 - bitsPerPixel) - pixbufShift) + 16
		}
		pixdata := int(pixbuf>>uint(pixbufShiftFlip)) & ((1 << uint(bitsPerPixel)) - 1)
		pixbufShift -= bitsPerPixel

		if screenX < 0 {
			continue
		}

		var newpixel ppuColor
		switch bitsPerPixel {
		case 2, 4:
			newpixel = ppuColor(p.paletteMemory[palette*16+pixdata])
		case 6:
			newpixel = ppuColor(p.paletteMemory[(palette>>2)*64+pixdata])
		case 8:
			newpixel = ppuColor(p.paletteMemory[pixdata])
		case 16:
			newpixel = ppuColor(pixdata)
		}

		if newpixel.transparent() {
			continue
		}

		if blend {
			oldpixel := p.framebuffer[screenY][screenX]
			if !oldpixel.transparent() {
				newpixel = newpixel.withRGB(
					ppuBlendInterpolate(oldpixel.r(), newpixel.r(), int(p.blendLevel)),
					ppuBlendInterpolate(oldpixel.g(), newpixel.g(), int(p.blendLevel)),
					ppuBlendInterpolate(oldpixel.b(), newpixel.b(), int(p.blendLevel)),
				)
			}
		}

		p.framebuffer[screenY][screenX] = newpixel
	}
}
