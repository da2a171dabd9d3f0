package nodedef

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blueprintgo/internal/ctxlog"
	"github.com/vk/blueprintgo/internal/fsutil"
	"github.com/vk/blueprintgo/internal/graph"
)

// nodeRootSchema is the top-level structure of a manifest file, expecting
// one or more 'node' blocks.
type nodeRootSchema struct {
	Nodes []*hclNode `hcl:"node,block"`
}

// hclNode is a single 'node' block, decoded in two passes: the label here,
// the body against nodeBodySchema below.
type hclNode struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`
}

var nodeBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "category"},
		{Name: "template"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "input", LabelNames: []string{"name"}},
		{Type: "output", LabelNames: []string{"name"}},
	},
}

var pinBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
	},
}

// LoadDir discovers every *.hcl manifest under dir and builds the node
// definition table. A node type whose template is missing is still
// registered, with a warning, so that graphs which never reach it still
// compile; the compiler reports NodeTemplateNotFound only on use.
func LoadDir(ctx context.Context, dir string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading node definitions...", "path", dir)

	filePaths, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk node definitions directory: %w", err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl node manifests found in path", "path", dir)
		return NewRegistry(), nil
	}

	parser := hclparse.NewParser()
	registry := NewRegistry()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}

		defs, err := parseManifest(ctx, hclFile, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to process node manifest %s: %w", filePath, err)
		}
		for _, def := range defs {
			if def.Template == "" {
				logger.Warn("Node type has no template; it will fail to compile if reachable",
					"node_type", def.Type, "file", filePath)
			}
			registry.definitions[def.Type] = def
		}
	}

	logger.Info("Node definition table loaded.", "node_types", registry.Len())
	return registry, nil
}

// parseManifest decodes every 'node' block in one manifest file.
func parseManifest(ctx context.Context, hclFile *hcl.File, filePath string) ([]*Definition, error) {
	root := &nodeRootSchema{}
	if diags := gohcl.DecodeBody(hclFile.Body, nil, root); diags.HasErrors() {
		return nil, diags
	}

	defs := make([]*Definition, 0, len(root.Nodes))
	for _, parsed := range root.Nodes {
		def, diags := parseNodeBlock(parsed)
		if diags.HasErrors() {
			return nil, diags
		}
		if def.Template == "" {
			if sidecar, err := loadSidecarTemplate(filePath, def.Type); err == nil {
				def.Template = sidecar
			}
		}
		defs = append(defs, def)
	}

	ctxlog.FromContext(ctx).Debug("Parsed node manifest", "file", filePath, "node_types", len(defs))
	return defs, nil
}

func parseNodeBlock(parsed *hclNode) (*Definition, hcl.Diagnostics) {
	var allDiags hcl.Diagnostics

	bodyContent, diags := parsed.Body.Content(nodeBodySchema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	def := &Definition{Type: parsed.Type}

	for name, target := range map[string]*string{
		"description": &def.Description,
		"category":    &def.Category,
		"template":    &def.Template,
	} {
		if attr, exists := bodyContent.Attributes[name]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, target)...)
		}
	}

	seen := make(map[string]bool)
	for _, block := range bodyContent.Blocks {
		pinName := block.Labels[0]
		key := block.Type + ":" + pinName
		if seen[key] {
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate pin definition",
				Detail:   fmt.Sprintf("An %s pin named '%s' has already been defined on node '%s'.", block.Type, pinName, def.Type),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[key] = true

		pin, pinDiags := parsePinBlock(block, pinName)
		allDiags = append(allDiags, pinDiags...)
		if pinDiags.HasErrors() {
			continue
		}

		switch block.Type {
		case "input":
			def.Inputs = append(def.Inputs, pin)
		case "output":
			def.Outputs = append(def.Outputs, pin)
		}
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}
	return def, nil
}

func parsePinBlock(block *hcl.Block, pinName string) (PinDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	pin := PinDefinition{Name: pinName}

	bodyContent, contentDiags := block.Body.Content(pinBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return pin, diags
	}

	typeAttr, exists := bodyContent.Attributes["type"]
	if !exists {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'type' attribute",
			Detail:   "The 'type' attribute is required for all pin blocks.",
			Subject:  &missingItemRange,
		})
		return pin, diags
	}
	diags = append(diags, gohcl.DecodeExpression(typeAttr.Expr, nil, &pin.DataType)...)

	if descAttr, exists := bodyContent.Attributes["description"]; exists {
		diags = append(diags, gohcl.DecodeExpression(descAttr.Expr, nil, &pin.Description)...)
	}

	if defaultAttr, exists := bodyContent.Attributes["default"]; exists {
		// A nil eval context is used because defaults must be literal values.
		val, valDiags := defaultAttr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			if err := checkDefaultType(pin.DataType, val); err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value type",
					Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type: %s.", pinName, err),
					Subject:  defaultAttr.Expr.Range().Ptr(),
				})
			} else {
				pin.Default = &val
			}
		}
	}

	return pin, diags
}

// checkDefaultType verifies a manifest default against the pin's declared
// data type. Engine-defined data types are accepted as-is.
func checkDefaultType(dataType string, val cty.Value) error {
	switch dataType {
	case graph.DataTypeExecution:
		return fmt.Errorf("execution pins cannot carry a default value")
	case "string":
		if val.Type() != cty.String {
			return fmt.Errorf("expected string, got %s", val.Type().FriendlyName())
		}
	case "number":
		if val.Type() != cty.Number {
			return fmt.Errorf("expected number, got %s", val.Type().FriendlyName())
		}
	case "boolean":
		if val.Type() != cty.Bool {
			return fmt.Errorf("expected boolean, got %s", val.Type().FriendlyName())
		}
	case "vector2", "vector3", "color":
		want := map[string]int{"vector2": 2, "vector3": 3, "color": 4}[dataType]
		if !val.Type().IsTupleType() || val.Type().Length() != want {
			return fmt.Errorf("expected a tuple of %d numbers", want)
		}
	}
	return nil
}

func loadSidecarTemplate(manifestPath, nodeType string) (string, error) {
	sidecar := filepath.Join(filepath.Dir(manifestPath), nodeType+".tron")
	content, err := os.ReadFile(sidecar)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
