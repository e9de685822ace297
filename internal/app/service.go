package app

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sdkmeta/internal/adapters"
	"sdkmeta/internal/core"
	"sdkmeta/internal/policies"
	"sdkmeta/internal/ports"
	"sdkmeta/internal/types"
)

type Config struct {
	ManifestPattern string
	SourcePatterns  []string
}

type Service struct {
	Locator ports.ManifestLocatorPort
	Loader  ports.ManifestLoaderPort
	Stdout  io.Writer
}

func NewService(cfg Config) (Service, error) {
	sources, err := policies.NewSourcePolicy(cfg.SourcePatterns)
	if err != nil {
		return Service{}, err
	}
	return Service{
		Locator: adapters.NewManifestLocatorAdapter(cfg.ManifestPattern),
		Loader:  adapters.NewManifestXMLAdapter(sources),
		Stdout:  os.Stdout,
	}, nil
}

func (s Service) loadSDK(ctx context.Context, sel Selection) (types.SDK, error) {
	root := strings.TrimSpace(sel.SDKRoot)
	if root == "" {
		return types.SDK{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk root is required")
	}
	manifest, err := s.Locator.FindManifest(root)
	if err != nil {
		return types.SDK{}, err
	}
	log.Ctx(ctx).Debug().Str("manifest", manifest).Msg("sdk manifest located")
	return s.Loader.LoadSDK(ctx, root, manifest)
}

func (s Service) loadDevice(ctx context.Context, sel Selection) (types.SDK, types.Device, error) {
	sdk, err := s.loadSDK(ctx, sel)
	if err != nil {
		return types.SDK{}, types.Device{}, err
	}
	device, err := core.SelectDevice(sdk, sel.Device)
	if err != nil {
		return types.SDK{}, types.Device{}, err
	}
	return sdk, device, nil
}

func (s Service) output(path string) adapters.OutputFileAdapter {
	return adapters.NewOutputFileAdapter(s.Stdout, path)
}
