package dfm

// Rule is one row of a guideline table: a design feature, the process the
// guideline applies to, and the guideline itself.
type Rule struct {
	Feature   string
	Process   string
	Guideline string
}

// PrintingRules is the 3D printing guideline table. Processes match the
// checker presets (FDM, SLA, SLS).
var PrintingRules = []Rule{
	{"Wall Thickness", "FDM", "Keep walls at or above 0.8 mm; thinner walls delaminate between layers."},
	{"Wall Thickness", "SLA", "Keep supported walls at or above 0.5 mm to survive post-cure handling."},
	{"Wall Thickness", "SLS", "Keep walls at or above 0.7 mm so powder removal does not break them."},
	{"Feature Size", "FDM", "Features below 0.6 mm are smaller than a standard nozzle and will not resolve."},
	{"Feature Size", "SLA", "Features down to 0.3 mm resolve, but fine pins need a wider base."},
	{"Feature Size", "SLS", "Features below 0.5 mm fuse into the surrounding powder."},
	{"Overhang Angle", "FDM", "Keep overhangs within 45 degrees from vertical or add supports."},
	{"Overhang Angle", "SLA", "Keep overhangs within 30 degrees; resin prints sag earlier than FDM."},
	{"Overhang Angle", "SLS", "No overhang limit; unfused powder supports every face."},
	{"Hole Radius", "FDM", "Holes under 1.0 mm radius close up; drill small holes after printing."},
	{"Hole Radius", "SLA", "Holes under 0.5 mm radius trap resin and seal during cure."},
	{"Hole Radius", "SLS", "Holes under 0.75 mm radius trap powder that cannot be cleared."},
	{"Clearance", "FDM", "Leave at least 0.5 mm between mating parts printed in place."},
	{"Clearance", "SLA", "Leave at least 0.3 mm between mating parts; resin bridges smaller gaps."},
	{"Clearance", "SLS", "Leave at least 0.5 mm so powder between parts can be removed."},
	{"Aspect Ratio", "FDM", "Tall features over 20:1 wobble during printing; add gussets."},
	{"Aspect Ratio", "SLA", "Tall features over 30:1 deflect during peel; orient at an angle."},
	{"Aspect Ratio", "SLS", "Features over 40:1 warp as the build cools; add ribs."},
	{"Text Size", "FDM", "Embossed text below 2.0 mm height is illegible; prefer embossed over engraved."},
	{"Text Size", "SLA", "Text down to 1.0 mm resolves; engraved text holds detail better than embossed."},
	{"Text Size", "SLS", "Text below 1.5 mm fills with partially sintered powder."},
}

// CNCRules is the CNC machining guideline table. CNC rules are not
// process-variant, so Process is empty.
var CNCRules = []Rule{
	{"Internal Corner Radius", "", "Internal corners need a radius at or above 0.5 mm; end mills cannot cut sharp internal corners."},
	{"Hole Radius", "", "Use standard drill sizes; holes under 1.0 mm radius need specialty tooling."},
	{"Hole Depth", "", "Keep hole depth within 4x diameter; deeper holes need peck or gun drilling."},
	{"Wall Thickness", "", "Keep machined walls at or above 1.0 mm in metal; thin walls chatter and deflect."},
	{"Pocket Depth", "", "Keep pocket depth within 4x tool diameter for standard end mills."},
	{"Tolerance", "", "Default to +/-0.125 mm; tighter tolerances raise cost sharply."},
	{"Thread Size", "", "Avoid threads smaller than M2; taps below that break frequently."},
	{"Undercuts", "", "Avoid undercuts; they require special tooling or a second setup."},
}

// InjectionMoldingRules is the injection molding guideline table.
var InjectionMoldingRules = []Rule{
	{"Wall Thickness", "", "Keep walls between 0.5 mm and 4.0 mm and as uniform as possible to avoid sink and warp."},
	{"Draft Angle", "", "Add at least 0.5 degrees of draft per side so parts eject cleanly."},
	{"Internal Corner Radius", "", "Round internal corners to at least 0.25 mm to reduce stress concentration."},
	{"Boss Depth", "", "Keep boss depth within 5x diameter and tie bosses to walls with ribs."},
	{"Undercuts", "", "Avoid undercuts; each one needs a side action or lifter in the mold."},
}

// Features returns the distinct feature names in a rule table, in table
// order.
func Features(rules []Rule) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rules {
		if !seen[r.Feature] {
			seen[r.Feature] = true
			out = append(out, r.Feature)
		}
	}
	return out
}

// Processes returns the distinct process names in a rule table, in table
// order. Empty processes are skipped.
func Processes(rules []Rule) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rules {
		if r.Process != "" && !seen[r.Process] {
			seen[r.Process] = true
			out = append(out, r.Process)
		}
	}
	return out
}
