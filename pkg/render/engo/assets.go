// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// defaultShellSprite is the fallback key when a cannon has no dedicated sprite.
const defaultShellSprite = "field gun"

// AssetManager handles loading and managing game assets
type AssetManager struct {
	// Shell sprites by cannon name
	shellSprites map[string]common.Drawable

	// Turret sprites
	carriageSprite common.Drawable
	barrelSprite   common.Drawable

	// Field sprites
	groundSprite common.Drawable
	dotSprite    common.Drawable

	// UI textures
	backgroundTexture common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		shellSprites: make(map[string]common.Drawable),
	}
}

// LoadAssets loads all game assets
func (am *AssetManager) LoadAssets() error {
	// Load turret sprites
	if err := am.loadTurretSprites(); err != nil {
		return err
	}

	// Load shell sprites
	if err := am.loadShellSprites(); err != nil {
		return err
	}

	// Load field and UI assets
	if err := am.loadFieldAssets(); err != nil {
		return err
	}

	return nil
}

// loadTurretSprites creates the carriage and barrel sprites
func (am *AssetManager) loadTurretSprites() error {
	// Since we don't have image files, we'll create simple geometric shapes

	// Carriage: low block on two wheels
	am.carriageSprite = am.createSprite(16, 10, [][]int{
		{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0},
	})

	// Barrel: horizontal strip, rotated around its left end at render time
	am.barrelSprite = am.createSprite(16, 4, [][]int{
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	})

	return nil
}

// loadShellSprites creates sprites for the cannon loadouts
func (am *AssetManager) loadShellSprites() error {
	// Field gun round: small dot
	fieldGunPattern := [][]int{
		{0, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 0},
	}

	// Mortar round: larger circle
	mortarPattern := [][]int{
		{0, 0, 0, 1, 1, 1, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 0, 0, 1, 1, 1, 1, 0, 0, 0},
	}

	am.shellSprites["field gun"] = am.createSprite(6, 6, fieldGunPattern)
	am.shellSprites["mortar"] = am.createSprite(10, 10, mortarPattern)

	return nil
}

// loadFieldAssets creates the ground tile, trajectory dot, and background
func (am *AssetManager) loadFieldAssets() error {
	// Ground: solid tile with a lighter top edge drawn by the renderer tint
	groundPattern := make([][]int, 16)
	for i := range groundPattern {
		groundPattern[i] = make([]int, 16)
		for j := range groundPattern[i] {
			groundPattern[i][j] = 1
		}
	}
	am.groundSprite = am.createSprite(16, 16, groundPattern)

	// Trajectory dot: 3x3 square
	am.dotSprite = am.createSprite(3, 3, [][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})

	// Create a simple starfield background
	backgroundPattern := make([][]int, 64)
	for i := range backgroundPattern {
		backgroundPattern[i] = make([]int, 64)
		// Add some random stars
		if i%8 == 0 && (i/8)%3 == 0 {
			backgroundPattern[i][i%64] = 1
		}
	}
	am.backgroundTexture = am.createSprite(64, 64, backgroundPattern)

	return nil
}

// createSprite creates a sprite from a 2D pattern
func (am *AssetManager) createSprite(width, height int, pattern [][]int) common.Drawable {
	// Create base RGBA image
	img := am.createBaseImage(width, height)

	// Draw pattern onto the image
	am.drawPatternOnImage(img, pattern, width, height)

	// Convert to Engo-compatible texture
	return am.convertToEngoTexture(img)
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func (am *AssetManager) createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage draws a 2D pixel pattern onto the provided RGBA image.
func (am *AssetManager) drawPatternOnImage(img *image.RGBA, pattern [][]int, width, height int) {
	for y, row := range pattern {
		if y >= height {
			break
		}
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
}

// convertToEngoTexture converts an RGBA image to an Engo-compatible texture.
func (am *AssetManager) convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nrgbaImg.Set(x, y, img.At(x, y))
		}
	}

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}

// GetShellSprite returns the sprite for a cannon's shells
func (am *AssetManager) GetShellSprite(cannonName string) common.Drawable {
	if sprite, exists := am.shellSprites[cannonName]; exists {
		return sprite
	}
	return am.shellSprites[defaultShellSprite] // Default fallback
}

// GetCarriageSprite returns the turret carriage sprite
func (am *AssetManager) GetCarriageSprite() common.Drawable {
	return am.carriageSprite
}

// GetBarrelSprite returns the turret barrel sprite
func (am *AssetManager) GetBarrelSprite() common.Drawable {
	return am.barrelSprite
}

// GetGroundSprite returns the ground tile sprite
func (am *AssetManager) GetGroundSprite() common.Drawable {
	return am.groundSprite
}

// GetDotSprite returns the trajectory dot sprite
func (am *AssetManager) GetDotSprite() common.Drawable {
	return am.dotSprite
}

// GetBackgroundTexture returns the background texture
func (am *AssetManager) GetBackgroundTexture() common.Drawable {
	return am.backgroundTexture
}
