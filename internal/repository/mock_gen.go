// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./member.go -destination=../mocks/mock_member_repository.go -package=mocks MemberRepositoryIface
//go:generate mockgen -source=./invitation.go -destination=../mocks/mock_invitation_repository.go -package=mocks InvitationRepositoryIface
//go:generate mockgen -source=./join_request.go -destination=../mocks/mock_join_request_repository.go -package=mocks JoinRequestRepositoryIface
