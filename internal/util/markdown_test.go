package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHeadings(t *testing.T) {
	assert.Equal(t, "<h1>Title</h1>", RenderLessonContent("# Title"))
	assert.Equal(t, "<h2>Section</h2>", RenderLessonContent("## Section"))
	assert.Equal(t, "<h3>Sub</h3>", RenderLessonContent("### Sub"))
}

func TestRenderBoldBeforeItalic(t *testing.T) {
	assert.Equal(t, "<p><strong>bold</strong></p>", RenderLessonContent("**bold**"))
	assert.Equal(t, "<p><em>italic</em></p>", RenderLessonContent("*italic*"))
	assert.Equal(t,
		"<p><strong>both</strong> and <em>one</em></p>",
		RenderLessonContent("**both** and *one*"))
}

func TestRenderListItems(t *testing.T) {
	out := RenderLessonContent("- first\n- second")
	assert.Equal(t, "<li>first</li>\n<li>second</li>", out)
}

func TestRenderWrapsPlainLinesInParagraphs(t *testing.T) {
	out := RenderLessonContent("one\n\ntwo")
	assert.Equal(t, "<p>one</p>\n<p>two</p>", out)
}

func TestRenderEscapesHTML(t *testing.T) {
	out := RenderLessonContent("<script>alert(1)</script>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderEmptyContent(t *testing.T) {
	assert.Equal(t, "", RenderLessonContent(""))
}

func TestRenderMixedDocument(t *testing.T) {
	content := "# Lesson\nintro text\n- **point** one\n- point *two*"
	out := RenderLessonContent(content)

	assert.Contains(t, out, "<h1>Lesson</h1>")
	assert.Contains(t, out, "<p>intro text</p>")
	assert.Contains(t, out, "<li><strong>point</strong> one</li>")
	assert.Contains(t, out, "<li>point <em>two</em></li>")
}
