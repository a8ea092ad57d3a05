// Package urlutil validates the URLs a notification may reference.
//
// Notification images are either local files or URLs. Validate accepts the
// http and https URLs that can be downloaded, while ValidateImage also
// accepts the package-relative schemes the Windows notification platform
// resolves on its own:
//
//	if urlutil.IsURL(ref) {
//		if err := urlutil.ValidateImage(ref); err != nil {
//			return fmt.Errorf("invalid image: %w", err)
//		}
//	}
package urlutil
