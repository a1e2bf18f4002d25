package main

import (
	"fmt"
	"strconv"
	"strings"

	"pdf-stamp/internal/merge"
	"pdf-stamp/internal/watermark"
)

// parseSignature reads "certificate|owner|validity". Validity may be empty.
func parseSignature(s string) (watermark.SignatureInfo, error) {
	parts := strings.SplitN(s, "|", 3)
	if len(parts) < 2 {
		return watermark.SignatureInfo{}, fmt.Errorf("invalid signature %q: want certificate|owner|validity", s)
	}
	sig := watermark.SignatureInfo{
		CertificateNumber: strings.TrimSpace(parts[0]),
		Owner:             strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		sig.Validity = strings.TrimSpace(parts[2])
	}
	return sig, nil
}

// parseText reads "x,y,size,text". The text itself may contain commas.
func parseText(s string) (merge.TextAnnotation, error) {
	parts := strings.SplitN(s, ",", 4)
	if len(parts) != 4 {
		return merge.TextAnnotation{}, fmt.Errorf("invalid text %q: want x,y,size,text", s)
	}

	nums := make([]float64, 3)
	for i, p := range parts[:3] {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return merge.TextAnnotation{}, fmt.Errorf("invalid text %q: %w", s, err)
		}
		nums[i] = n
	}
	return merge.TextAnnotation{X: nums[0], Y: nums[1], FontSize: nums[2], Text: parts[3]}, nil
}
