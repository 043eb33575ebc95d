package freecad

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Python snippet builders for operations the addon has no dedicated RPC
// method for. Everything funnels through execute_code.

// pyStr renders s as a Python string literal. strconv.Quote produces
// double-quoted escaping that Python parses identically for the names and
// paths that appear here.
func pyStr(s string) string { return strconv.Quote(s) }

// pyList renders a []string as a Python list literal.
func pyList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = pyStr(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ViewFitScript recenters the camera on all visible objects.
const ViewFitScript = `FreeCADGui.SendMsgToActiveView("ViewFit")`

// VersionScript prints the running FreeCAD version as "major.minor.patch"
// so the bridge can check addon compatibility.
const VersionScript = `import FreeCAD
print(".".join(str(p) for p in FreeCAD.Version()[:3]))`

// ExportScript builds the STEP export snippet. The addon's dedicated
// export_step method is missing on older builds, so the export runs through
// execute_code: resolve the save directory, collect objects with shapes,
// build a compound, and call exportStep.
func ExportScript(docName, exportTo, fileName string, objectNames []string) string {
	var b strings.Builder
	b.WriteString("import os\nimport tempfile\nimport FreeCAD\nimport Part\n\n")
	fmt.Fprintf(&b, "doc = FreeCAD.getDocument(%s)\n", pyStr(docName))
	b.WriteString("if doc is None:\n    raise Exception(\"document not found\")\n\n")

	b.WriteString("home = os.path.expanduser(\"~\")\n")
	fmt.Fprintf(&b, "location = %s\n", pyStr(strings.ToLower(exportTo)))
	b.WriteString(`dirs = {
    "desktop": os.path.join(home, "Desktop"),
    "documents": os.path.join(home, "Documents"),
    "downloads": os.path.join(home, "Downloads"),
    "temp": tempfile.gettempdir(),
}
save_dir = dirs.get(location, dirs["desktop"])
`)
	fmt.Fprintf(&b, "file_path = os.path.join(save_dir, %s)\n\n", pyStr(fileName))

	fmt.Fprintf(&b, "names = %s\n", pyList(objectNames))
	b.WriteString(`objects = []
if names:
    for name in names:
        obj = doc.getObject(name)
        if obj is not None and hasattr(obj, "Shape"):
            objects.append(obj)
else:
    objects = [obj for obj in doc.Objects if hasattr(obj, "Shape")]

if not objects:
    raise Exception("no valid objects to export")

compound = Part.Compound([obj.Shape for obj in objects])
compound.exportStep(file_path)
print("exported %d objects to %s" % (len(objects), file_path))
`)
	return b.String()
}

// SetPropertyScript assigns a numeric property on one object and recomputes.
func SetPropertyScript(docName, objName, property string, value float64) string {
	var b strings.Builder
	b.WriteString("import FreeCAD\n")
	fmt.Fprintf(&b, "doc = FreeCAD.getDocument(%s)\n", pyStr(docName))
	fmt.Fprintf(&b, "obj = doc.getObject(%s) if doc else None\n", pyStr(objName))
	fmt.Fprintf(&b, "if obj is not None:\n    obj.%s = %g\n    doc.recompute()\n", property, value)
	return b.String()
}

// ClampDimensionsScript raises each listed property to its floor value when
// it is zero or negative. Floors are emitted in sorted property order so the
// generated code is stable.
func ClampDimensionsScript(docName, objName string, floors map[string]float64) string {
	props := make([]string, 0, len(floors))
	for p := range floors {
		props = append(props, p)
	}
	sort.Strings(props)

	var b strings.Builder
	b.WriteString("import FreeCAD\n")
	fmt.Fprintf(&b, "doc = FreeCAD.getDocument(%s)\n", pyStr(docName))
	fmt.Fprintf(&b, "obj = doc.getObject(%s) if doc else None\n", pyStr(objName))
	b.WriteString("if obj is not None:\n")
	for _, p := range props {
		fmt.Fprintf(&b, "    if obj.%s <= 0:\n        obj.%s = %g\n", p, p, floors[p])
	}
	b.WriteString("    doc.recompute()\n")
	return b.String()
}

// FilletScript fillets every edge of an object at the given radius, placing
// the result in a new Part::Feature and hiding the original.
func FilletScript(docName, objName string, radius float64) string {
	var b strings.Builder
	b.WriteString("import FreeCAD\nimport Part\n")
	fmt.Fprintf(&b, "doc = FreeCAD.getDocument(%s)\n", pyStr(docName))
	fmt.Fprintf(&b, "obj = doc.getObject(%s) if doc else None\n", pyStr(objName))
	fmt.Fprintf(&b, `if obj is not None and hasattr(obj, "Shape"):
    edges = obj.Shape.Edges
    if edges:
        fillet = obj.Shape.makeFillet(%g, edges)
        result = doc.addObject("Part::Feature", %s)
        result.Shape = fillet
        result.ViewObject.ShapeColor = obj.ViewObject.ShapeColor
        obj.ViewObject.Visibility = False
        doc.recompute()
`, radius, pyStr(objName+"_Filleted"))
	return b.String()
}

// TranslateScript shifts an object along the X axis, used to pull apart
// objects stacked at the same placement.
func TranslateScript(docName, objName string, dx float64) string {
	var b strings.Builder
	b.WriteString("import FreeCAD\n")
	fmt.Fprintf(&b, "doc = FreeCAD.getDocument(%s)\n", pyStr(docName))
	fmt.Fprintf(&b, "obj = doc.getObject(%s) if doc else None\n", pyStr(objName))
	fmt.Fprintf(&b, "if obj is not None:\n    obj.Placement.Base.x += %g\n    doc.recompute()\n", dx)
	return b.String()
}

// ActiveDocumentScript prints the active document's name, or nothing when
// no document is open.
const ActiveDocumentScript = `import FreeCAD
if FreeCAD.ActiveDocument is not None:
    print(FreeCAD.ActiveDocument.Name)`
