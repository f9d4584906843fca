package analyzer

import (
	"context"
	"image"
	"math"
	"testing"
)

func TestNewImageAnalyzer(t *testing.T) {
	analyzer, err := NewImageAnalyzer(DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}
	if analyzer == nil {
		t.Fatal("Expected non-nil analyzer")
	}
}

func TestNewImageAnalyzer_InvalidOptions(t *testing.T) {
	if _, err := NewImageAnalyzer(DefaultOptions().WithLanderMass(0)); err == nil {
		t.Error("Expected error for zero lander mass")
	}
	if _, err := NewImageAnalyzer(DefaultOptions().WithHeatmapMode("sum")); err == nil {
		t.Error("Expected error for unknown heatmap mode")
	}
}

func TestAnalyze_UniformImage(t *testing.T) {
	analyzer, err := NewImageAnalyzer(DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}

	result, err := analyzer.Analyze(context.Background(), createUniformGray(ImageSize, ImageSize, 128))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Altitude != 12800 {
		t.Errorf("Expected altitude 12800, got %f", result.Altitude)
	}
	expectedThrust := 1000 * 1.62 * (1 + 12800.0/1000)
	if math.Abs(result.RequiredThrust-expectedThrust) > 1e-9 {
		t.Errorf("Expected thrust %f, got %f", expectedThrust, result.RequiredThrust)
	}
	if math.Abs(result.Thrusters.Sum()-result.RequiredThrust) > 1e-9 {
		t.Errorf("Thrusters sum %f != required %f", result.Thrusters.Sum(), result.RequiredThrust)
	}
	if len(result.Scan.Spots) != 49 || len(result.Scan.Best) != 3 {
		t.Errorf("Expected 49 scored / 3 best, got %d / %d", len(result.Scan.Spots), len(result.Scan.Best))
	}
	if result.Annotated == nil || result.Annotated.Bounds() != image.Rect(0, 0, ImageSize, ImageSize) {
		t.Error("Expected a 512x512 annotated image")
	}
	if result.ProcessingTime < 0 {
		t.Error("Expected non-negative processing time")
	}
}

func TestAnalyze_LanderMassOption(t *testing.T) {
	analyzer, err := NewImageAnalyzer(DefaultOptions().WithLanderMass(500))
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}

	result, err := analyzer.Analyze(context.Background(), createUniformGray(ImageSize, ImageSize, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(result.RequiredThrust-500*1.62) > 1e-9 {
		t.Errorf("Expected thrust %f, got %f", 500*1.62, result.RequiredThrust)
	}
}

func TestAnalyze_Reproducible(t *testing.T) {
	analyzer, err := NewImageAnalyzer(DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}
	gray := createFlatPatchImage(ImageSize, image.Pt(320, 64), DefaultWindowSize)

	first, err := analyzer.Analyze(context.Background(), gray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), gray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first.Altitude != second.Altitude || first.RequiredThrust != second.RequiredThrust {
		t.Error("Expected identical altitude and thrust")
	}
	for i := range first.Scan.Best {
		if first.Scan.Best[i] != second.Scan.Best[i] {
			t.Errorf("Best[%d] differs: %v vs %v", i, first.Scan.Best[i], second.Scan.Best[i])
		}
	}
	if first.Scan.Best[0].Point != image.Pt(320, 64) {
		t.Errorf("Expected flat patch to win, got %v", first.Scan.Best[0].Point)
	}
}
