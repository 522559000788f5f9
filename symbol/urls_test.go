package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewSegmentDefaults(t *testing.T) {
	for _, style := range Styles() {
		for _, size := range Sizes() {
			for _, weight := range Weights() {
				opts := DefaultOptions().WithStyle(style).WithSize(size).WithWeight(weight)
				assert.Equal(t, "default", PreviewSegment(opts))
			}
		}
	}
}

func TestGradeSegment(t *testing.T) {
	assert.Equal(t, "gradN25", GradeNegative25.Segment())
	assert.Equal(t, "grad200", Grade200.Segment())

	opts := DefaultOptions().WithGrade(GradeNegative25)
	assert.Equal(t, "gradN25", PreviewSegment(opts))
	assert.Equal(t, "gradN25fill1", PreviewSegment(opts.WithFilled(true)))
	assert.Equal(t, "grad200", PreviewSegment(opts.WithGrade(Grade200)))
}

func TestPreviewURL(t *testing.T) {
	icon := NewIcon("10k")
	assert.Equal(t,
		"https://fonts.gstatic.com/s/i/short-term/release/materialsymbolsrounded/10k/default/24px.svg",
		PreviewURL("", icon, DefaultOptions()))

	opts := DefaultOptions().WithStyle(StyleSharp).WithGrade(Grade200).WithFilled(true).WithSize(Size48)
	assert.Equal(t,
		"https://fonts.gstatic.com/s/i/short-term/release/materialsymbolssharp/10k/grad200fill1/48px.svg",
		PreviewURL(DefaultAssetHost, icon, opts))

	// weight never reaches the preview path
	assert.Equal(t, PreviewURL("", icon, opts), PreviewURL("", icon, opts.WithWeight(Weight700)))
}

func TestResourceURL(t *testing.T) {
	icon := NewIcon("search")
	assert.Equal(t,
		"https://fonts.gstatic.com/s/i/short-term/release/materialsymbolsrounded/search/default/24px.xml",
		ResourceURL("", icon, DefaultOptions()))

	opts := DefaultOptions().WithWeight(Weight700).WithGrade(GradeNegative25).WithFilled(true)
	assert.Equal(t,
		"https://fonts.gstatic.com/s/i/short-term/release/materialsymbolsrounded/search/wght700gradN25fill1/24px.xml",
		ResourceURL("", icon, opts))

	assert.Equal(t,
		"http://127.0.0.1:8080/s/i/short-term/release/materialsymbolsoutlined/search/wght100/20px.xml",
		ResourceURL("http://127.0.0.1:8080/", icon, DefaultOptions().WithStyle(StyleOutlined).WithWeight(Weight100).WithSize(Size20)))
}

func TestPreviewKeyIgnoresWeight(t *testing.T) {
	icon := NewIcon("settings")
	base := DefaultOptions().WithGrade(Grade200)
	for _, w := range Weights() {
		assert.Equal(t, PreviewKeyFor(icon, base), PreviewKeyFor(icon, base.WithWeight(w)), "weight %d", w)
	}
}

func TestPreviewKeyMatchesURL(t *testing.T) {
	icon := NewIcon("home")
	seen := map[string]PreviewKey{}
	for _, style := range Styles() {
		for _, grade := range Grades() {
			for _, filled := range []bool{false, true} {
				for _, size := range Sizes() {
					for _, weight := range Weights() {
						opts := Options{Filled: filled, Grade: grade, Size: size, Style: style, Weight: weight}
						key := PreviewKeyFor(icon, opts)
						url := PreviewURL("", icon, opts)
						assert.Equal(t, url, key.URL(""))
						if prev, ok := seen[url]; ok {
							assert.Equal(t, prev, key, "same url must map to same key")
						}
						seen[url] = key
					}
				}
			}
		}
	}
	assert.Len(t, seen, len(Styles())*len(Grades())*2*len(Sizes()))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		icon string
		opts Options
		want string
	}{
		{"defaults", "10k", DefaultOptions(), "ic_10k_rounded_24dp.xml"},
		{"weight and fill", "10k", DefaultOptions().WithWeight(Weight700).WithFilled(true), "ic_10k_rounded_w700_filled_24dp.xml"},
		{"negative grade", "home", DefaultOptions().WithGrade(GradeNegative25).WithStyle(StyleSharp), "ic_home_sharp_gn25_24dp.xml"},
		{"positive grade", "home", DefaultOptions().WithGrade(Grade200).WithSize(Size48), "ic_home_rounded_g200_48dp.xml"},
		{"all fields", "home", Options{Filled: true, Grade: Grade200, Size: Size20, Style: StyleOutlined, Weight: Weight100}, "ic_home_outlined_w100_filled_g200_20dp.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(NewIcon(tt.icon), tt.opts))
		})
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "ab_cd", SanitizeName("a-b_c.d"))
	assert.Equal(t, "arrow_back", SanitizeName("Arrow Back"))
	assert.Equal(t, "ic_a1b2_rounded_24dp.xml", FileName(NewIcon("a1!b2?"), DefaultOptions()))
	assert.Equal(t, "3d_rotation", SanitizeName("3D Rotation"))
}
