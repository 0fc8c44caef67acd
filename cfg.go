package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/zucenko/conduit/config"
	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/store"
)

const (
	screenWidth  = 480
	screenHeight = 270
	screenScale  = 2

	fontSize    = 8
	lineHeight  = 10
	charWidth   = 5
	textPadding = 8
	// frameBorder is the corner size of the 9-patch frame image
	frameBorder = 4
)

// Assets is what the client loads once at start.
type Assets struct {
	Config  config.Config
	Levels  []*levels.Level
	Store   store.Store
	Profile *store.Profile
	Font    font.Face
	Frame   *ebiten.Image
}

func Load(cfgPath string) (*Assets, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	cfg.SetupLogging()

	lvls, err := levels.Load(levels.Open(cfg.LevelsDir))
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	st, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	face, err := loadFont()
	if err != nil {
		st.Close()
		return nil, err
	}
	frame, err := ebiten.NewImageFromImage(frameImage(), ebiten.FilterDefault)
	if err != nil {
		st.Close()
		return nil, err
	}
	log.WithFields(log.Fields{"levels": len(lvls), "store": cfg.Store.Driver}).Info("assets loaded")
	return &Assets{
		Config:  cfg,
		Levels:  lvls,
		Store:   st,
		Profile: store.NewProfile(st),
		Font:    face,
		Frame:   frame,
	}, nil
}

func loadFont() (font.Face, error) {
	tt, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    fontSize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

// frameImage is the 9-patch source: a rim of frameBorder pixels around a
// translucent centre.
func frameImage() image.Image {
	const side = frameBorder*2 + 4
	rim := color.RGBA{0xff, 0x52, 0x77, 0xdd}
	fill := color.RGBA{0x10, 0x10, 0x28, 0xcc}
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			edge := x == 1 || y == 1 || x == side-2 || y == side-2
			switch {
			case x == 0 || y == 0 || x == side-1 || y == side-1:
				// transparent outer pixel rounds the corners when scaled
			case edge:
				img.Set(x, y, rim)
			default:
				img.Set(x, y, fill)
			}
		}
	}
	return img
}
