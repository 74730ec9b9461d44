package render

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

const (
	liveEditorBase = "https://mermaid.live/edit#"
	inkBase        = "https://mermaid.ink/svg/"
)

// liveState is the document state mermaid.live keeps in its URL fragment.
type liveState struct {
	Code          string `json:"code"`
	Mermaid       string `json:"mermaid"`
	AutoSync      bool   `json:"autoSync"`
	UpdateDiagram bool   `json:"updateDiagram"`
}

// Pako encodes a diagram the way mermaid.live does: the state JSON is
// zlib-compressed and URL-safe base64 encoded behind a "pako:" prefix.
func Pako(src, theme string) (string, error) {
	cfg, err := json.Marshal(map[string]string{"theme": themeOrDefault(theme)})
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(liveState{Code: src, Mermaid: string(cfg), AutoSync: true, UpdateDiagram: true})
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write(raw); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return "pako:" + base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// LiveURL returns a mermaid.live editor link for the diagram.
func LiveURL(src, theme string) (string, error) {
	p, err := Pako(src, theme)
	if err != nil {
		return "", fmt.Errorf("encode diagram: %w", err)
	}
	return liveEditorBase + p, nil
}

// InkURL returns a mermaid.ink SVG image URL for the diagram.
func InkURL(src, theme string) (string, error) {
	p, err := Pako(src, theme)
	if err != nil {
		return "", fmt.Errorf("encode diagram: %w", err)
	}
	return inkBase + p + "?" + url.Values{"theme": {themeOrDefault(theme)}}.Encode(), nil
}

// DecodePako reverses Pako and returns the diagram source.
func DecodePako(s string) (string, error) {
	const prefix = "pako:"
	if len(s) < len(prefix) || s[:len(prefix)] != prefix {
		return "", fmt.Errorf("missing %q prefix", prefix)
	}
	data, err := base64.URLEncoding.DecodeString(s[len(prefix):])
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("inflate: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("inflate: %w", err)
	}
	var st liveState
	if err := json.Unmarshal(raw, &st); err != nil {
		return "", fmt.Errorf("decode state: %w", err)
	}
	return st.Code, nil
}

func themeOrDefault(theme string) string {
	if theme == "" {
		return "default"
	}
	return theme
}
