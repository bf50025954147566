package webpath

const (
	Api = "/api"

	ApiRegister = Api + "/users/register"
	ApiLogin    = Api + "/users/login"
	ApiProfile  = Api + "/users/profile"

	ApiPackages    = Api + "/packages"
	ApiPackageByID = ApiPackages + "/:id"

	ApiInquiries   = Api + "/inquiries"
	ApiInquiryByID = ApiInquiries + "/:id"

	ApiAdminUsers = Api + "/admin/users"
)
