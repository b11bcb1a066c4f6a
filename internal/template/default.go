package template

// DefaultTemplate is the embedded garment prompt.
// It uses {{variable}} placeholders for dynamic content injection.
const DefaultTemplate = `Fashion design mockup, {{view}} of a single garment on a plain light grey studio background.
Garment: {{style}} made of {{fabric}}.
Cut: {{fit}} ({{fit_description}}), standard size {{size}}.
Body: {{gender}} form with {{bust}} cm bust and {{hips}} cm hips.
Show the whole garment, evenly lit, true-to-life fabric texture and drape. No text, no logos, no watermark.
{{view_instructions}}`

// viewInstructions are appended per view so the three images read as one garment.
var viewInstructions = map[View]string{
	ViewFront: "Camera faces the front of the garment.",
	ViewSide:  "Camera at 90 degrees to the garment, showing its side profile. Keep colour, fabric and cut identical to the front view.",
	ViewBack:  "Camera faces the back of the garment. Keep colour, fabric and cut identical to the front view.",
}
