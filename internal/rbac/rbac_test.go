package rbac

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRBAC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Module Suite")
}

var _ = Describe("Role hierarchy", func() {
	DescribeTable("HasPermission",
		func(held, required Role, expected bool) {
			Expect(HasPermission(held, required)).To(Equal(expected))
		},
		Entry("Admin satisfies Admin", RoleAdmin, RoleAdmin, true),
		Entry("Admin satisfies Editor", RoleAdmin, RoleEditor, true),
		Entry("Admin satisfies Viewer", RoleAdmin, RoleViewer, true),
		Entry("Editor satisfies Editor", RoleEditor, RoleEditor, true),
		Entry("Editor satisfies Viewer", RoleEditor, RoleViewer, true),
		Entry("Editor does not satisfy Admin", RoleEditor, RoleAdmin, false),
		Entry("Viewer satisfies Viewer", RoleViewer, RoleViewer, true),
		Entry("Viewer does not satisfy Editor", RoleViewer, RoleEditor, false),
		Entry("Viewer does not satisfy Admin", RoleViewer, RoleAdmin, false),
		Entry("NoAccess satisfies nothing, not even itself", RoleNoAccess, RoleNoAccess, false),
		Entry("NoAccess does not satisfy Viewer", RoleNoAccess, RoleViewer, false),
		Entry("unknown role satisfies nothing", Role("Owner"), RoleViewer, false),
	)

	Describe("ParseRole", func() {
		It("accepts every defined role", func() {
			for _, raw := range []string{"Admin", "Editor", "Viewer", "NoAccess"} {
				role, err := ParseRole(raw)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(role)).To(Equal(raw))
			}
		})

		It("rejects unknown and differently cased roles", func() {
			for _, raw := range []string{"admin", "EDITOR", "Owner", ""} {
				_, err := ParseRole(raw)
				Expect(err).To(MatchError(ErrInvalidRole))
			}
		})
	})
})
