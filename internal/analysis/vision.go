// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/cadwell-io/cadbridge/internal/llm"
)

const visionSystemPrompt = `You are a CAD review assistant. You are shown a
screenshot of a FreeCAD 3D viewport. Identify visual problems with the
model: floating or disconnected geometry, parts intersecting each other,
implausible proportions, and objects that appear degenerate or missing.
Be specific about which object each finding applies to and keep the
report short.`

const visionMaxTokens = 1024

// AnalyzeScreenshot sends a viewport capture to the provider for visual
// review. focus narrows the review to the named concerns; empty means a
// general pass. pngBase64 is the addon's screenshot payload as-is.
func AnalyzeScreenshot(ctx context.Context, provider llm.Provider, pngBase64, docName string, focus []string) (string, error) {
	if pngBase64 == "" {
		return "", fmt.Errorf("analysis: no screenshot data to review")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Review this screenshot of the FreeCAD document %q.\n", docName)
	if len(focus) > 0 {
		fmt.Fprintf(&b, "Focus on: %s.\n", strings.Join(focus, ", "))
	}
	b.WriteString("List each issue with the object it affects and a suggested fix.")

	resp, err := provider.Complete(ctx, llm.Request{
		Prompt:       b.String(),
		SystemPrompt: visionSystemPrompt,
		MaxTokens:    visionMaxTokens,
		ImagePNG:     pngBase64,
	})
	if err != nil {
		return "", fmt.Errorf("analysis: screenshot review failed: %w", err)
	}
	return resp.Content, nil
}
