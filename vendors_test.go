package logofetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVendorStageBrandfetchSkippedWithoutCredential(t *testing.T) {
	t.Parallel()

	var brandfetchCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/brands/", func(w http.ResponseWriter, r *http.Request) {
		brandfetchCalls++
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv) // no BrandfetchKey
	stage := &vendorStage{cfg: cfg}
	if got := stage.Attempt(context.Background(), &Resolution{Brand: "Openly", Domain: "openly.example"}); got != nil {
		t.Fatalf("Attempt = %+v, want nil with every service failing", got)
	}
	if brandfetchCalls != 0 {
		t.Errorf("brand-data API called %d times without a credential, want 0", brandfetchCalls)
	}
}

func TestVendorStageBrandfetchPrefersVector(t *testing.T) {
	t.Parallel()

	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/brands/openly.example", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"logos":[{"formats":[
			{"src":"https://cdn.example/logo.png"},
			{"src":"https://cdn.example/logo.svg"}
		]}]}`))
	})
	mux.HandleFunc("/logo.svg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(testSVG))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv)
	cfg.BrandfetchKey = "test-key"

	stage := &vendorStage{cfg: cfg}
	asset := stage.Attempt(context.Background(), &Resolution{Brand: "Openly", Domain: "openly.example"})
	if asset == nil {
		t.Fatal("expected an asset from the brand-data API")
	}
	if asset.Format != FormatVector {
		t.Errorf("Format = %v, want vector preferred over raster", asset.Format)
	}
	if !asset.Official {
		t.Error("vendor results are official by domain convention")
	}
	if asset.Quality != QualityHigh {
		t.Errorf("Quality = %q, want %q for vector", asset.Quality, QualityHigh)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer credential", gotAuth)
	}
}

func TestVendorStageClearbitFirst(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	mux := http.NewServeMux()
	mux.HandleFunc("/openly.example", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("size") != "1024" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(append(png, make([]byte, 64)...))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv)
	stage := &vendorStage{cfg: cfg}
	asset := stage.Attempt(context.Background(), &Resolution{Brand: "Openly", Domain: "openly.example"})
	if asset == nil {
		t.Fatal("expected an asset from the CDN endpoint")
	}
	if asset.Format != FormatRaster {
		t.Errorf("Format = %v, want raster", asset.Format)
	}
	if asset.Quality != QualityMediumHigh {
		t.Errorf("Quality = %q, want %q for raster", asset.Quality, QualityMediumHigh)
	}
}

func TestVendorStageNoDomain(t *testing.T) {
	t.Parallel()

	stage := &vendorStage{cfg: &Config{}}
	if got := stage.Attempt(context.Background(), &Resolution{Brand: "Openly"}); got != nil {
		t.Errorf("Attempt without a domain = %+v, want nil", got)
	}
}
