package freecad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportScript_AllObjects(t *testing.T) {
	code := ExportScript("MyModel", "desktop", "model.step", nil)

	assert.Contains(t, code, `FreeCAD.getDocument("MyModel")`)
	assert.Contains(t, code, `location = "desktop"`)
	assert.Contains(t, code, `os.path.join(save_dir, "model.step")`)
	assert.Contains(t, code, "names = []")
	assert.Contains(t, code, "exportStep(file_path)")
}

func TestExportScript_ObjectSubsetAndLocation(t *testing.T) {
	code := ExportScript("MyModel", "Downloads", "parts.step", []string{"Box", "Cylinder"})

	assert.Contains(t, code, `location = "downloads"`, "location is lowercased")
	assert.Contains(t, code, `names = ["Box", "Cylinder"]`)
}

func TestExportScript_EscapesQuotes(t *testing.T) {
	code := ExportScript(`My"Model`, "temp", "out.step", nil)
	assert.Contains(t, code, `FreeCAD.getDocument("My\"Model")`)
}

func TestSetPropertyScript(t *testing.T) {
	code := SetPropertyScript("Doc", "Box", "Length", 1.2)

	assert.Contains(t, code, `doc.getObject("Box")`)
	assert.Contains(t, code, "obj.Length = 1.2")
	assert.Contains(t, code, "doc.recompute()")
}

func TestClampDimensionsScript_StableOrder(t *testing.T) {
	floors := map[string]float64{"Width": 10, "Height": 10, "Length": 10}
	code := ClampDimensionsScript("Doc", "Box", floors)

	// Properties appear sorted so generated code is deterministic.
	h := strings.Index(code, "obj.Height")
	l := strings.Index(code, "obj.Length")
	w := strings.Index(code, "obj.Width")
	assert.True(t, h < l && l < w, "expected Height < Length < Width order, got: %s", code)
	assert.Contains(t, code, "if obj.Height <= 0:")
}

func TestFilletScript(t *testing.T) {
	code := FilletScript("Doc", "Box", 0.5)

	assert.Contains(t, code, "makeFillet(0.5, edges)")
	assert.Contains(t, code, `"Box_Filleted"`)
	assert.Contains(t, code, "obj.ViewObject.Visibility = False")
}

func TestTranslateScript(t *testing.T) {
	code := TranslateScript("Doc", "Plate", 20)
	assert.Contains(t, code, "obj.Placement.Base.x += 20")
}
