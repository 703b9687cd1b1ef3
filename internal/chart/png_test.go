package chart

import (
	"bytes"
	"image/png"
	"testing"

	"cardash/internal/models"
)

func TestRenderPNGScatterAndBoxplot(t *testing.T) {
	sub := fullSubset(
		listingRow("Polo", 10, 90, 10500, 10000, "Benzine"),
		listingRow("Polo", 20, 120, 9000, 10000, "Diesel"),
		listingRow("Polo", 30, 75, 8000, 9000, "Diesel"),
	)
	scatter, err := PriceAgeScatter(sub, "Volkswagen", "Polo")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	var rows []models.Listing
	rows = append(rows, priced("Polo", 10000, 12000)...)
	rows = append(rows, priced("Golf", 20000, 26000)...)
	box, err := ComparativeBoxplot(fullSubset(rows...), "Polo")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	for name, fig := range map[string]*Figure{"scatter": scatter, "boxplot": box} {
		var buf bytes.Buffer
		if err := RenderPNG(fig, 640, 400, &buf); err != nil {
			t.Fatalf("%s: render err=%v", name, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("%s: decode err=%v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 400 {
			t.Fatalf("%s: size=%v", name, b)
		}
	}
}

func TestRenderPNGPlaceholderIsBlank(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPNG(Placeholder(NoListingsTitle), 100, 50, &buf); err != nil {
		t.Fatalf("err=%v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode err=%v", err)
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("placeholder pixel not white")
	}
}

func TestMarkerDiameterMinimum(t *testing.T) {
	if got := MarkerDiameter(1, SizeRef(400), 2); got != 2 {
		t.Fatalf("diameter=%v want sizemin 2", got)
	}
	if got := MarkerDiameter(400, SizeRef(400), 2); got < 11.9 || got > 12.1 {
		t.Fatalf("diameter=%v want ~12", got)
	}
}
