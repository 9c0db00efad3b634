// Package services holds the business rules of the academic manager.
//
// Services defined in this package:
//   - AuthService: issues access tokens for the admin credential
//   - CourseService: course catalog CRUD with deletion guards
//   - SectionService: section CRUD, deletion guards and rosters
//   - StudentService: student registry CRUD with deletion guards
//   - EnrollmentService: the enrollment validation pipeline plus
//     grade/attendance recording
//   - RecordService: transcript and cumulative average computation
//
// Each service depends on a narrow store interface declared next to it, so
// the rules can be exercised against an in-memory store in tests. The
// pgx-backed implementations live in the repositories package.
package services
