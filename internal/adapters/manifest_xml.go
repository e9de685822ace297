package adapters

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"sdkmeta/internal/ports"
	"sdkmeta/internal/types"
)

// ManifestXMLAdapter parses vendor SDK manifests. Parsed SDKs are cached per
// path and modification time for the lifetime of the adapter.
type ManifestXMLAdapter struct {
	Sources ports.SourcePolicyPort

	mu    sync.Mutex
	cache map[string]manifestCacheEntry
}

func NewManifestXMLAdapter(sources ports.SourcePolicyPort) *ManifestXMLAdapter {
	return &ManifestXMLAdapter{
		Sources: sources,
		cache:   map[string]manifestCacheEntry{},
	}
}

type manifestCacheEntry struct {
	modTime time.Time
	root    string
	sdk     types.SDK
}

type manifestXML struct {
	Attrs      []xml.Attr     `xml:",any,attr"`
	Devices    []deviceXML    `xml:"devices>device"`
	Components []componentXML `xml:"components>component"`
}

type deviceXML struct {
	Attrs    []xml.Attr `xml:",any,attr"`
	Packages []nodeXML  `xml:"package"`
	Defines  []nodeXML  `xml:"defines>define"`
	Cores    []nodeXML  `xml:"core"`
}

type componentXML struct {
	Attrs        []xml.Attr  `xml:",any,attr"`
	Dependencies []nodeXML   `xml:"dependencies>component_dependency"`
	AllOf        []nodeXML   `xml:"dependencies>all>component_dependency"`
	Sources      []sourceXML `xml:"source"`
}

type sourceXML struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Files []nodeXML  `xml:"files"`
}

type nodeXML struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// component is the validated form of a <component> node.
type component struct {
	id           string
	name         string
	kind         types.ComponentType
	version      string
	devices      map[string]struct{}
	dependencies []string
	sources      []string
}

func (a *ManifestXMLAdapter) LoadSDK(ctx context.Context, root string, manifestPath string) (types.SDK, error) {
	info, err := os.Stat(manifestPath)
	if err != nil {
		return types.SDK{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: %s", types.MsgMetadataNotFound, manifestPath)).
			WithCause(err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return types.SDK{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid sdk root %s", root)).
			WithCause(err)
	}

	a.mu.Lock()
	if entry, ok := a.cache[manifestPath]; ok && entry.modTime.Equal(info.ModTime()) && entry.root == absRoot {
		a.mu.Unlock()
		return entry.sdk, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return types.SDK{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: %s", types.MsgMetadataNotFound, manifestPath)).
			WithCause(err)
	}
	sdk, err := a.parse(ctx, absRoot, manifestPath, content)
	if err != nil {
		return types.SDK{}, err
	}

	a.mu.Lock()
	a.cache[manifestPath] = manifestCacheEntry{modTime: info.ModTime(), root: absRoot, sdk: sdk}
	a.mu.Unlock()
	return sdk, nil
}

// Parse builds an SDK from an in-memory manifest.
func (a *ManifestXMLAdapter) Parse(ctx context.Context, root string, content []byte) (types.SDK, error) {
	return a.parse(ctx, root, "", content)
}

func (a *ManifestXMLAdapter) parse(ctx context.Context, root string, manifestPath string, content []byte) (types.SDK, error) {
	var doc manifestXML
	decoder := xml.NewDecoder(bytes.NewReader(content))
	if err := decoder.Decode(&doc); err != nil {
		return types.SDK{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(types.MsgParseError).
			WithCause(err)
	}
	if err := checkTrailing(decoder); err != nil {
		return types.SDK{}, err
	}
	formatVersion, _ := attrValue(doc.Attrs, "format_version")
	if err := checkFormatVersion(formatVersion); err != nil {
		return types.SDK{}, parseError(err.Error())
	}

	components, err := a.collectComponents(doc.Components)
	if err != nil {
		return types.SDK{}, err
	}

	seen := map[string]struct{}{}
	for _, node := range doc.Devices {
		name, err := requireAttr(node.Attrs, "device", "name")
		if err != nil {
			return types.SDK{}, err
		}
		if _, dup := seen[name]; dup {
			return types.SDK{}, parseError(fmt.Sprintf("duplicate device %q", name))
		}
		seen[name] = struct{}{}
	}

	devices := make([]types.Device, len(doc.Devices))
	errs := make([]error, len(doc.Devices))
	group, groupCtx := errgroup.WithContext(ctx)
	for idx := range doc.Devices {
		group.Go(func() error {
			device, err := buildDevice(groupCtx, doc.Devices[idx], components)
			devices[idx] = device
			errs[idx] = err
			return err
		})
	}
	if err := group.Wait(); err != nil {
		// Wait returns whichever failure finished first; report the
		// lowest-indexed device instead so the error is stable across runs.
		for _, deviceErr := range errs {
			if deviceErr != nil {
				return types.SDK{}, deviceErr
			}
		}
		return types.SDK{}, err
	}

	log.Ctx(ctx).Debug().
		Str("manifest", manifestPath).
		Int("devices", len(devices)).
		Int("components", len(components)).
		Msg("sdk manifest parsed")
	return types.NewSDK(root, manifestPath, strings.TrimSpace(formatVersion), devices), nil
}

// checkTrailing consumes the rest of the document after the root element.
// Only whitespace, comments and processing instructions may follow it.
func checkTrailing(decoder *xml.Decoder) error {
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: %s", types.MsgParseError, err.Error())).
				WithCause(err)
		}
		switch tok := token.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) != 0 {
				return parseError("unexpected text after the root element")
			}
		case xml.StartElement:
			return parseError(fmt.Sprintf("unexpected element <%s> after the root element", tok.Name.Local))
		case xml.EndElement:
			return parseError(fmt.Sprintf("unexpected end element </%s>", tok.Name.Local))
		}
	}
}

func (a *ManifestXMLAdapter) collectComponents(nodes []componentXML) ([]component, error) {
	components := make([]component, 0, len(nodes))
	for _, node := range nodes {
		id, err := requireAttr(node.Attrs, "component", "id")
		if err != nil {
			return nil, err
		}
		kind, _ := attrValue(node.Attrs, "type")
		entry := component{
			id:      id,
			kind:    types.ComponentType(strings.TrimSpace(kind)),
			devices: map[string]struct{}{},
		}
		entry.name, _ = attrValue(node.Attrs, "name")
		entry.version, _ = attrValue(node.Attrs, "version")
		if devices, ok := attrValue(node.Attrs, "devices"); ok {
			for _, device := range strings.Fields(devices) {
				entry.devices[device] = struct{}{}
			}
		}
		if entry.kind != types.ComponentTypeDriver {
			components = append(components, entry)
			continue
		}

		if entry.name, err = requireAttr(node.Attrs, "component", "name"); err != nil {
			return nil, err
		}
		for _, dep := range append(append([]nodeXML(nil), node.Dependencies...), node.AllOf...) {
			value, err := requireAttr(dep.Attrs, "component_dependency", "value")
			if err != nil {
				return nil, err
			}
			entry.dependencies = append(entry.dependencies, value)
		}
		basePath, _ := attrValue(node.Attrs, "package_base_path")
		for _, source := range node.Sources {
			sourceType, _ := attrValue(source.Attrs, "type")
			if types.SourceKind(strings.TrimSpace(sourceType)) != types.SourceKindSrc {
				continue
			}
			relative, err := requireAttr(source.Attrs, "source", "relative_path")
			if err != nil {
				return nil, err
			}
			base := basePath
			if override, ok := attrValue(source.Attrs, "package_base_path"); ok {
				base = override
			}
			for _, file := range source.Files {
				mask, err := requireAttr(file.Attrs, "files", "mask")
				if err != nil {
					return nil, err
				}
				full := path.Join(toSlash(base), toSlash(relative), toSlash(mask))
				if a.Sources != nil && !a.Sources.AcceptSource(full) {
					continue
				}
				entry.sources = append(entry.sources, full)
			}
		}
		components = append(components, entry)
	}
	return components, nil
}

// buildDevice assembles one device from its node and the shared, read-only
// component list. It touches no state outside its return value.
func buildDevice(ctx context.Context, node deviceXML, components []component) (types.Device, error) {
	name, err := requireAttr(node.Attrs, "device", "name")
	if err != nil {
		return types.Device{}, err
	}

	var packages []string
	for _, pkg := range node.Packages {
		value, err := requireAttr(pkg.Attrs, "package", "name")
		if err != nil {
			return types.Device{}, err
		}
		packages = append(packages, value)
	}
	if len(packages) == 0 {
		return types.Device{}, parseError(fmt.Sprintf("device %q declares no package", name))
	}

	var defines []types.DefineTemplate
	for _, define := range node.Defines {
		value, err := requireAttr(define.Attrs, "define", "name")
		if err != nil {
			return types.Device{}, err
		}
		template := types.DefineTemplate{Name: value}
		template.Value, _ = attrValue(define.Attrs, "value")
		defines = append(defines, template)
	}

	var cores []types.Core
	for _, core := range node.Cores {
		attrs := map[string]string{}
		for _, key := range []string{"name", "type", "fpu", "dsp"} {
			value, err := requireAttr(core.Attrs, "core", key)
			if err != nil {
				return types.Device{}, err
			}
			attrs[key] = value
		}
		cores = append(cores, types.Core{
			Name: attrs["name"],
			Type: attrs["type"],
			FPU:  attrs["fpu"] == "true",
			DSP:  attrs["dsp"] == "true",
		})
	}
	if len(cores) == 0 {
		return types.Device{}, parseError(fmt.Sprintf("device %q declares no core", name))
	}

	drivers := buildDrivers(ctx, name, components)
	return types.NewDevice(name, cores, packages, defines, drivers), nil
}

func buildDrivers(ctx context.Context, device string, components []component) types.DriverMap {
	driverNames := map[string]string{}
	for _, comp := range components {
		if comp.kind == types.ComponentTypeDriver {
			if _, ok := driverNames[comp.id]; !ok || comp.associated(device) {
				driverNames[comp.id] = comp.name
			}
		}
	}
	known := map[string]struct{}{}
	for _, comp := range components {
		known[comp.id] = struct{}{}
	}

	drivers := types.DriverMap{}
	for _, comp := range components {
		if comp.kind != types.ComponentTypeDriver || !comp.associated(device) {
			continue
		}
		driver := types.Driver{
			ID:      comp.id,
			Name:    comp.name,
			Version: comp.version,
			Sources: append([]string(nil), comp.sources...),
		}
		seen := map[string]struct{}{}
		for _, value := range comp.dependencies {
			depName, ok := driverNames[value]
			if !ok {
				if _, exists := known[value]; !exists {
					log.Ctx(ctx).Debug().
						Str("device", device).
						Str("driver", comp.name).
						Str("dependency", value).
						Msg("dependency on unknown component ignored")
				}
				continue
			}
			if _, dup := seen[depName]; dup {
				continue
			}
			seen[depName] = struct{}{}
			driver.Dependencies = append(driver.Dependencies, depName)
		}

		if existing, dup := drivers[driver.Name]; dup {
			if !newerDriverVersion(existing.Version, driver.Version) {
				log.Ctx(ctx).Warn().
					Str("device", device).
					Str("driver", driver.Name).
					Str("kept", existing.ID).
					Str("ignored", driver.ID).
					Msg("duplicate driver declaration shadowed")
				continue
			}
			log.Ctx(ctx).Warn().
				Str("device", device).
				Str("driver", driver.Name).
				Str("kept", driver.ID).
				Str("ignored", existing.ID).
				Msg("duplicate driver declaration shadowed")
		}
		drivers[driver.Name] = driver
	}
	return drivers
}

func (c component) associated(device string) bool {
	_, ok := c.devices[device]
	return ok
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func requireAttr(attrs []xml.Attr, kind string, name string) (string, error) {
	value, ok := attrValue(attrs, name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", parseError(fmt.Sprintf("%s node missing required attribute %q", kind, name))
	}
	return strings.TrimSpace(value), nil
}

func parseError(detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s", types.MsgParseError, detail))
}

func toSlash(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), "\\", "/")
}

var _ ports.ManifestLoaderPort = (*ManifestXMLAdapter)(nil)
