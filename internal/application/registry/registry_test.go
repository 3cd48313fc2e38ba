package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/assist-core/internal/domain"
)

func TestValidateActionAcceptsEveryCatalogService(t *testing.T) {
	t.Parallel()

	reg := Default()
	for _, d := range Catalog() {
		if d.Kind == domain.KindReadOnly {
			continue
		}
		for _, service := range d.Services {
			got, err := reg.ValidateAction(d.Name, service)
			require.NoError(t, err, "%s.%s", d.Name, service)
			assert.Equal(t, service, got)
		}
	}
}

func TestValidateActionResolvesGlobalAliases(t *testing.T) {
	t.Parallel()

	reg := Default()
	for _, d := range Catalog() {
		if d.Kind == domain.KindReadOnly {
			continue
		}
		for alias, canonical := range GlobalAliases() {
			if d.Allows(alias) {
				// a real service name always wins over an alias
				continue
			}
			got, err := reg.ValidateAction(d.Name, alias)
			if d.Allows(canonical) {
				require.NoError(t, err, "%s/%s", d.Name, alias)
				assert.Equal(t, canonical, got)
				continue
			}
			assert.ErrorIs(t, err, domain.ErrActionNotSupported, "%s/%s", d.Name, alias)
		}
	}
}

func TestValidateActionExamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		domain  string
		action  string
		want    string
		wantErr error
	}{
		{name: "lock secure", domain: "lock", action: "secure", want: "lock"},
		{name: "lock unsecure", domain: "lock", action: "unsecure", want: "unlock"},
		{name: "lock open is a real service", domain: "lock", action: "open", want: "open"},
		{name: "vacuum clean", domain: "vacuum", action: "clean", want: "start"},
		{name: "vacuum dock", domain: "vacuum", action: "dock", want: "return_to_base"},
		{name: "vacuum start is a real service", domain: "vacuum", action: "start", want: "start"},
		{name: "cover lift", domain: "cover", action: "lift", want: "open_cover"},
		{name: "cover drop", domain: "cover", action: "drop", want: "close_cover"},
		{name: "cover raise", domain: "cover", action: "raise", want: "open_cover"},
		{name: "light activate", domain: "light", action: "activate", want: "turn_on"},
		{name: "lift is cover only", domain: "light", action: "lift", wantErr: domain.ErrActionNotSupported},
		{name: "open has no cover service on valve", domain: "valve", action: "open", wantErr: domain.ErrActionNotSupported},
		{name: "sensor is read-only", domain: "sensor", action: "turn_on", wantErr: domain.ErrDomainReadOnly},
		{name: "weather is read-only", domain: "weather", action: "get_forecast", wantErr: domain.ErrDomainReadOnly},
		{name: "unknown domain", domain: "not_a_domain", action: "x", wantErr: domain.ErrDomainNotFound},
	}

	reg := Default()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := reg.ValidateAction(tc.domain, tc.action)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateActionRejectionMessages(t *testing.T) {
	t.Parallel()

	reg := Default()

	_, err := reg.ValidateAction("sensor", "turn_on")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.RejectDomainReadOnly, verr.Kind)
	assert.Equal(t, "Sensors are read-only. Use 'get_entity_details' to read sensor values.", verr.Message)

	_, err = reg.ValidateAction("lights", "turn_on")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"light"}, verr.Suggestions)
	assert.Equal(t, "Domain 'lights' not supported. Did you mean: light?", verr.Error())

	_, err = reg.ValidateAction("input", "turn_on")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"input_boolean", "input_number", "input_text"}, verr.Suggestions)

	_, err = reg.ValidateAction("garage", "open")
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, verr.Suggestions)
	assert.Equal(t, "Domain 'garage' not supported. Use 'list_domains' to see available domains.", verr.Message)

	_, err = reg.ValidateAction("media_player", "rewind")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.RejectActionNotSupported, verr.Kind)
	assert.Equal(t, []string{"turn_on", "turn_off", "toggle", "volume_up", "volume_down"}, verr.Available)
	assert.Equal(t, "Action 'rewind' not valid for media_player. Available: turn_on, turn_off, toggle, volume_up, volume_down", verr.Message)
}

func TestReadOnlyFallbackMessage(t *testing.T) {
	t.Parallel()

	reg, err := New([]domain.DomainDescriptor{{Name: "event", Kind: domain.KindReadOnly}})
	require.NoError(t, err)

	_, err = reg.ValidateAction("event", "fire")
	assert.EqualError(t, err, "Domain 'event' is read-only. Use 'get_entity_details' to read values.")
}

func TestEmptyServiceListMessage(t *testing.T) {
	t.Parallel()

	reg, err := New([]domain.DomainDescriptor{{Name: "stub", Kind: domain.KindControllable}})
	require.NoError(t, err)

	_, err = reg.ValidateAction("stub", "turn_on")
	assert.EqualError(t, err, "Domain 'stub' has no available services")
}

func TestResolveServiceNeverFails(t *testing.T) {
	t.Parallel()

	reg := Default()
	assert.Equal(t, "turn_on", reg.ResolveService("light", "turn_on"))
	assert.Equal(t, "turn_on", reg.ResolveService("light", "enable"))
	assert.Equal(t, "open_cover", reg.ResolveService("cover", "lift"))
	assert.Equal(t, "lift", reg.ResolveService("light", "lift"))
	assert.Equal(t, "dance", reg.ResolveService("nowhere", "dance"))
	assert.Equal(t, "open_cover", reg.ResolveService("nowhere", "open"))
}

func TestValidateParameters(t *testing.T) {
	t.Parallel()

	reg := Default()

	err := reg.ValidateParameters("cover", "set_cover_position", map[string]any{})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, domain.ErrMissingParameters)
	assert.Equal(t, []string{"position"}, verr.Missing)
	assert.Equal(t, "Missing required parameters for cover.set_cover_position: position", verr.Message)

	assert.NoError(t, reg.ValidateParameters("cover", "set_cover_position", map[string]any{"position": 50}))
	assert.NoError(t, reg.ValidateParameters("cover", "set_cover_position", map[string]any{"position": 50, "speed": "fast"}))
	assert.NoError(t, reg.ValidateParameters("light", "turn_on", nil))
	assert.NoError(t, reg.ValidateParameters("unknown", "anything", nil))

	err = reg.ValidateParameters("tts", "speak", map[string]any{"cache": true})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"media_player_entity_id", "message"}, verr.Missing)
}

func TestServiceParameters(t *testing.T) {
	t.Parallel()

	reg := Default()
	p := reg.ServiceParameters("media_player", "play_media")
	assert.Equal(t, []string{"media"}, p.Required)
	assert.Equal(t, []string{"enqueue", "announce"}, p.Optional)

	assert.Empty(t, reg.ServiceParameters("switch", "turn_on").Required)
	assert.Empty(t, reg.ServiceParameters("nope", "turn_on").Optional)
}

func TestListDomains(t *testing.T) {
	t.Parallel()

	reg := Default()
	all := reg.ListDomains(nil)
	assert.Len(t, all, 45)
	assert.Equal(t, "light", all[0])
	assert.Equal(t, "persistent_notification", all[len(all)-1])

	essential := domain.PriorityEssential
	assert.Equal(t, []string{"light", "switch", "cover", "climate", "lock", "scene", "script", "automation"}, reg.ListDomains(&essential))

	missing := domain.Priority(9)
	assert.Empty(t, reg.ListDomains(&missing))

	assert.Equal(t, []string{"sensor", "binary_sensor", "weather", "sun"}, reg.DomainsByKind(domain.KindReadOnly))
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	reg := Default()
	stats := reg.Statistics()
	assert.Equal(t, 45, stats.Total)
	assert.Equal(t, 38, stats.ByKind[domain.KindControllable])
	assert.Equal(t, 4, stats.ByKind[domain.KindReadOnly])
	assert.Equal(t, 3, stats.ByKind[domain.KindServiceOnly])
	assert.Equal(t, map[domain.Priority]int{1: 8, 2: 8, 3: 11, 4: 8, 5: 10}, stats.ByPriority)
	assert.Equal(t, stats, reg.Statistics())

	flat := Flatten(stats)
	assert.Equal(t, 45, flat["total"])
	assert.Equal(t, 4, flat["read_only"])
	assert.Equal(t, 11, flat["priority_3"])
	_, ok := flat["priority_6"]
	assert.False(t, ok)
}

func TestNewRejectsInconsistentCatalog(t *testing.T) {
	t.Parallel()

	_, err := New([]domain.DomainDescriptor{{
		Name:       "light",
		Services:   []string{"turn_on"},
		Parameters: map[string]domain.ServiceParameters{"blink": {Required: []string{"rate"}}},
	}})
	assert.ErrorContains(t, err, `unknown service "blink"`)

	_, err = New([]domain.DomainDescriptor{{Name: "light"}, {Name: "light"}})
	assert.ErrorContains(t, err, "duplicate domain")

	_, err = New([]domain.DomainDescriptor{{Name: " "}})
	assert.ErrorContains(t, err, "domain name is required")
}

func TestDomainReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	reg := Default()
	d, ok := reg.Domain("light")
	require.True(t, ok)
	d.Services[0] = "explode"
	d.Parameters["turn_on"] = domain.ServiceParameters{}

	again, _ := reg.Domain("light")
	assert.Equal(t, "turn_on", again.Services[0])
	assert.NotEmpty(t, again.Parameters["turn_on"].Optional)

	_, ok = reg.Domain("nope")
	assert.False(t, ok)
}

func TestCheckAliases(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Default().CheckAliases())

	reg, err := New([]domain.DomainDescriptor{{Name: "cover", Services: []string{"open_cover"}}})
	require.NoError(t, err)
	problems := reg.CheckAliases()
	assert.Contains(t, problems, "cover alias drop targets unknown service close_cover")
	assert.Contains(t, problems, "aliases declared for unknown domain lock")
}
